package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/service"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// VinculoHandler exposes the resolution-to-teacher link endpoints.
type VinculoHandler struct {
	service *service.VinculoService
}

// NewVinculoHandler constructs a vinculo handler.
func NewVinculoHandler(svc *service.VinculoService) *VinculoHandler {
	return &VinculoHandler{service: svc}
}

// LinkMany godoc
// @Summary Vincular docentes a una resolución
// @Description Vincula un lote de DNIs; los inválidos o desconocidos se informan como ignorados
// @Tags Vinculos
// @Accept json
// @Produce json
// @Param payload body service.LinkManyRequest true "Lote de vínculos"
// @Success 200 {object} service.LinkManyResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/vinculos [post]
func (h *VinculoHandler) LinkMany(c *gin.Context) {
	var req service.LinkManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	result, err := h.service.LinkMany(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"ok":         true,
		"vinculados": result.Vinculados,
		"ignorados":  result.Ignorados,
	})
}

// Unlink godoc
// @Summary Desvincular un docente de una resolución
// @Tags Vinculos
// @Accept json
// @Produce json
// @Param payload body service.UnlinkRequest true "Par a desvincular"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /admin/vinculos [delete]
func (h *VinculoHandler) Unlink(c *gin.Context) {
	var req service.UnlinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	if err := h.service.Unlink(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"ok": true})
}

// ListByResolucion godoc
// @Summary Listar vínculos de una resolución
// @Tags Vinculos
// @Produce json
// @Param resolucionId path string true "ID de la resolución"
// @Success 200 {array} models.Vinculo
// @Router /admin/vinculos/{resolucionId} [get]
func (h *VinculoHandler) ListByResolucion(c *gin.Context) {
	vinculos, err := h.service.ListByResolucion(c.Request.Context(), c.Param("resolucionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vinculos)
}
