package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/service"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// LookupHandler exposes the public teacher lookup.
type LookupHandler struct {
	service *service.LookupService
}

// NewLookupHandler constructs a lookup handler.
func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// Buscar godoc
// @Summary Buscar resoluciones por DNI
// @Description Devuelve todas las resoluciones asociadas al DNI, directas y vinculadas, con su estado de acuse
// @Tags Público
// @Produce json
// @Param dni query string true "DNI del docente"
// @Success 200 {object} service.LookupResult
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /public/buscar [get]
func (h *LookupHandler) Buscar(c *gin.Context) {
	result, err := h.service.Lookup(c.Request.Context(), c.Query("dni"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
