package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/middleware"
	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/service"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// ResolucionHandler exposes the resolution publishing endpoints.
type ResolucionHandler struct {
	service *service.ResolucionService
}

// NewResolucionHandler constructs a resolucion handler.
func NewResolucionHandler(svc *service.ResolucionService) *ResolucionHandler {
	return &ResolucionHandler{service: svc}
}

type resolucionCreateResponse struct {
	models.Resolucion
	Created        bool `json:"created,omitempty"`
	AlreadyExisted bool `json:"alreadyExisted,omitempty"`
}

// Create godoc
// @Summary Publicar una resolución
// @Description Crea la resolución; si ya existe una con el mismo título y URL la devuelve sin duplicar
// @Tags Resoluciones
// @Accept json
// @Produce json
// @Param payload body service.CreateResolucionRequest true "Resolución"
// @Success 200 {object} models.Resolucion
// @Success 201 {object} models.Resolucion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/resoluciones [post]
func (h *ResolucionHandler) Create(c *gin.Context) {
	var req service.CreateResolucionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	creadoPor := ""
	if claims, ok := c.Get(middleware.ContextUserKey); ok {
		creadoPor = claims.(*models.JWTClaims).Email
	}

	resolucion, alreadyExisted, err := h.service.Create(c.Request.Context(), req, creadoPor)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := resolucionCreateResponse{Resolucion: *resolucion}
	if alreadyExisted {
		res.AlreadyExisted = true
		response.JSON(c, http.StatusOK, res)
		return
	}
	res.Created = true
	response.Created(c, res)
}

// List godoc
// @Summary Listar resoluciones
// @Description Lista resoluciones, opcionalmente filtradas por título
// @Tags Resoluciones
// @Produce json
// @Param q query string false "Filtro por título"
// @Success 200 {array} models.Resolucion
// @Router /admin/resoluciones [get]
func (h *ResolucionHandler) List(c *gin.Context) {
	resoluciones, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resoluciones)
}

// Update godoc
// @Summary Editar una resolución
// @Description Actualiza los campos presentes en el payload
// @Tags Resoluciones
// @Accept json
// @Produce json
// @Param id path string true "ID de la resolución"
// @Param payload body service.UpdateResolucionRequest true "Campos a modificar"
// @Success 200 {object} models.Resolucion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/resoluciones/{id} [patch]
func (h *ResolucionHandler) Update(c *gin.Context) {
	var req service.UpdateResolucionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	resolucion, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolucion)
}

// Delete godoc
// @Summary Eliminar una resolución
// @Description Elimina la resolución y sus vínculos
// @Tags Resoluciones
// @Produce json
// @Param id path string true "ID de la resolución"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /admin/resoluciones/{id} [delete]
func (h *ResolucionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"ok": true})
}
