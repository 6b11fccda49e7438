package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/service"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Iniciar sesión
// @Description Autentica al administrador por email y contraseña
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credenciales"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "faltan credenciales"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
