package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/davideme94/sad-proyecto/internal/models"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
	"github.com/davideme94/sad-proyecto/pkg/export"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type acuseRepository interface {
	Create(ctx context.Context, acuse *models.Acuse) error
	ListAll(ctx context.Context) ([]models.Acuse, error)
	ListByResolucion(ctx context.Context, resolucionID string) ([]models.Acuse, error)
}

// RecordAcuseRequest is the consent payload. IPHash and UserAgent are filled
// in by the HTTP boundary; the raw network address never reaches this layer.
type RecordAcuseRequest struct {
	DocenteDNI     string `json:"docenteDni"`
	ResolucionID   string `json:"resolucionId"`
	NombreCompleto string `json:"nombreCompleto"`
	Email          string `json:"email"`
	Acepto         bool   `json:"acepto"`
	TextoLegal     string `json:"textoLegal"`
	IPHash         string `json:"-"`
	UserAgent      string `json:"-"`
}

// AcuseService orchestrates the acknowledgment ledger.
type AcuseService struct {
	repo         acuseRepository
	resoluciones resolucionFinder
	cache        lookupCache
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewAcuseService constructs an AcuseService.
func NewAcuseService(repo acuseRepository, resoluciones resolucionFinder, cache lookupCache, logger *zap.Logger) *AcuseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcuseService{
		repo:         repo,
		resoluciones: resoluciones,
		cache:        cache,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

// Record validates and appends a consent record, returning it together with
// the document URL the signer unlocked. A refused consent is rejected before
// anything touches the store.
func (s *AcuseService) Record(ctx context.Context, req RecordAcuseRequest) (*models.Acuse, string, error) {
	switch {
	case !models.ValidDNI(req.DocenteDNI):
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "DNI inválido")
	case req.ResolucionID == "":
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "falta la resolución")
	case strings.TrimSpace(req.NombreCompleto) == "":
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "falta el nombre completo")
	case !emailPattern.MatchString(req.Email):
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "email inválido")
	case !req.Acepto:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "es necesario aceptar la notificación")
	case strings.TrimSpace(req.TextoLegal) == "":
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "falta el texto legal")
	}

	resolucion, err := s.resoluciones.FindByID(ctx, req.ResolucionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "resolución no encontrada")
		}
		return nil, "", appErrors.FromStore(err, "no se pudo consultar la resolución")
	}
	// The direct-association guard: a resolucion bound to another docente can
	// not be acknowledged through this dni. Vinculos are not consulted here.
	if resolucion.DocenteDNI != nil && *resolucion.DocenteDNI != req.DocenteDNI {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "resolución no encontrada")
	}

	acuse := &models.Acuse{
		DocenteDNI:     req.DocenteDNI,
		ResolucionID:   req.ResolucionID,
		NombreCompleto: strings.TrimSpace(req.NombreCompleto),
		Email:          strings.TrimSpace(req.Email),
		Acepto:         true,
		TextoLegal:     req.TextoLegal,
		IPHash:         req.IPHash,
		UserAgent:      req.UserAgent,
		FirmadoEn:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, acuse); err != nil {
		return nil, "", appErrors.FromStore(err, "no se pudo registrar el acuse")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, lookupCacheKey(req.DocenteDNI)); err != nil {
			s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
		}
	}
	return acuse, resolucion.DriveURL, nil
}

// ListAll returns the whole ledger, newest first.
func (s *AcuseService) ListAll(ctx context.Context) ([]models.Acuse, error) {
	acuses, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo listar acuses")
	}
	return acuses, nil
}

// ListByResolucion returns the ledger entries for one resolucion.
func (s *AcuseService) ListByResolucion(ctx context.Context, resolucionID string) ([]models.Acuse, error) {
	acuses, err := s.repo.ListByResolucion(ctx, resolucionID)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo listar acuses")
	}
	return acuses, nil
}

// Export renders the ledger as a downloadable table.
func (s *AcuseService) Export(ctx context.Context, format string) ([]byte, string, error) {
	acuses, err := s.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Firmado", "DNI", "Nombre", "Email", "Resolución"},
		Rows:    make([]map[string]string, 0, len(acuses)),
	}
	for _, a := range acuses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Firmado":    a.FirmadoEn.Format(time.RFC3339),
			"DNI":        a.DocenteDNI,
			"Nombre":     a.NombreCompleto,
			"Email":      a.Email,
			"Resolución": a.ResolucionID,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", fmt.Errorf("export acuses csv: %w", err)
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Registro de acuses")
		if err != nil {
			return nil, "", fmt.Errorf("export acuses pdf: %w", err)
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "formato desconocido")
	}
}
