package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/service"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// DocenteHandler exposes the teacher registry endpoints.
type DocenteHandler struct {
	service *service.DocenteService
}

// NewDocenteHandler constructs a docente handler.
func NewDocenteHandler(svc *service.DocenteService) *DocenteHandler {
	return &DocenteHandler{service: svc}
}

type docenteUpsertResponse struct {
	models.Docente
	Created        bool `json:"created,omitempty"`
	Updated        bool `json:"updated,omitempty"`
	AlreadyExisted bool `json:"alreadyExisted,omitempty"`
}

// Upsert godoc
// @Summary Alta o actualización de un docente
// @Description Crea el docente o actualiza su nombre si el DNI ya existe
// @Tags Docentes
// @Accept json
// @Produce json
// @Param payload body service.UpsertDocenteRequest true "Docente"
// @Success 200 {object} models.Docente
// @Success 201 {object} models.Docente
// @Failure 400 {object} map[string]string
// @Router /admin/docentes [post]
func (h *DocenteHandler) Upsert(c *gin.Context) {
	var req service.UpsertDocenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	docente, verdict, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := docenteUpsertResponse{Docente: *docente}
	status := http.StatusOK
	switch verdict {
	case models.UpsertCreated:
		res.Created = true
		status = http.StatusCreated
	case models.UpsertUpdated:
		res.Updated = true
	case models.UpsertAlreadyExisted:
		res.AlreadyExisted = true
	}
	response.JSON(c, status, res)
}

// Bulk godoc
// @Summary Carga masiva de docentes
// @Description Procesa un lote de docentes; las filas inválidas se informan sin abortar el lote
// @Tags Docentes
// @Accept json
// @Produce json
// @Param payload body service.BulkUpsertRequest true "Lote de docentes"
// @Success 200 {object} service.BulkUpsertResult
// @Failure 400 {object} map[string]string
// @Router /admin/docentes/bulk [post]
func (h *DocenteHandler) Bulk(c *gin.Context) {
	var req service.BulkUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}

	result, err := h.service.BulkUpsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"ok":       true,
		"upserted": result.Upserted,
		"updated":  result.Updated,
		"errors":   result.Errors,
	})
}

// List godoc
// @Summary Listar docentes
// @Description Lista docentes, opcionalmente filtrados por DNI o nombre
// @Tags Docentes
// @Produce json
// @Param q query string false "Filtro por DNI o nombre"
// @Success 200 {array} models.Docente
// @Router /admin/docentes [get]
func (h *DocenteHandler) List(c *gin.Context) {
	docentes, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docentes)
}

// Delete godoc
// @Summary Eliminar un docente
// @Description Elimina el docente y sus vínculos
// @Tags Docentes
// @Produce json
// @Param dni path string true "DNI"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /admin/docentes/{dni} [delete]
func (h *DocenteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("dni")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"ok": true})
}
