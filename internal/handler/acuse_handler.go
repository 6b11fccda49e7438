package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/middleware"
	"github.com/davideme94/sad-proyecto/internal/service"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/response"
)

// AcuseHandler exposes the acknowledgment ledger endpoints.
type AcuseHandler struct {
	service *service.AcuseService
	metrics *service.MetricsService
}

// NewAcuseHandler constructs an acuse handler.
func NewAcuseHandler(svc *service.AcuseService, metrics *service.MetricsService) *AcuseHandler {
	return &AcuseHandler{service: svc, metrics: metrics}
}

// Record godoc
// @Summary Registrar un acuse de notificación
// @Description Valida y registra la aceptación; a cambio entrega la URL de descarga del documento
// @Tags Acuses
// @Accept json
// @Produce json
// @Param payload body service.RecordAcuseRequest true "Acuse"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /public/acuse [post]
func (h *AcuseHandler) Record(c *gin.Context) {
	var req service.RecordAcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload inválido"))
		return
	}
	req.IPHash = middleware.HashClientIP(c)
	req.UserAgent = c.GetHeader("User-Agent")

	acuse, driveURL, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.ObserveAcuseRecorded()
	response.Created(c, gin.H{
		"ok":       true,
		"acuseId":  acuse.ID,
		"driveUrl": driveURL,
	})
}

// List godoc
// @Summary Listar acuses
// @Description Lista todos los acuses, el más reciente primero
// @Tags Acuses
// @Produce json
// @Success 200 {array} models.Acuse
// @Router /admin/acuses [get]
func (h *AcuseHandler) List(c *gin.Context) {
	acuses, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, acuses)
}

// ListByResolucion godoc
// @Summary Listar acuses de una resolución
// @Tags Acuses
// @Produce json
// @Param id path string true "ID de la resolución"
// @Success 200 {array} models.Acuse
// @Router /admin/resoluciones/{id}/acuses [get]
func (h *AcuseHandler) ListByResolucion(c *gin.Context) {
	acuses, err := h.service.ListByResolucion(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, acuses)
}

// Export godoc
// @Summary Exportar el registro de acuses
// @Description Descarga el registro completo en CSV o PDF
// @Tags Acuses
// @Produce octet-stream
// @Param formato query string false "csv o pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /admin/acuses/export [get]
func (h *AcuseHandler) Export(c *gin.Context) {
	data, contentType, err := h.service.Export(c.Request.Context(), c.DefaultQuery("formato", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Name the attachment from the validated content type, never the raw query.
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="acuses.`+ext+`"`)
	c.Data(http.StatusOK, contentType, data)
}
