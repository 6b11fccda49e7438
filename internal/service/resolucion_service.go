package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/davideme94/sad-proyecto/internal/models"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
)

type resolucionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Resolucion, error)
	FindByTituloURL(ctx context.Context, titulo, driveURL string) (*models.Resolucion, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Resolucion, error)
	Search(ctx context.Context, q string) ([]models.Resolucion, error)
	ListByDocente(ctx context.Context, dni string) ([]models.Resolucion, error)
	Create(ctx context.Context, resolucion *models.Resolucion) error
	Update(ctx context.Context, resolucion *models.Resolucion) error
	Delete(ctx context.Context, id string) error
}

type docenteFinder interface {
	FindByDNI(ctx context.Context, dni string) (*models.Docente, error)
}

// CreateResolucionRequest is the payload for publishing a resolucion.
type CreateResolucionRequest struct {
	DocenteDNI *string `json:"docenteDni" validate:"omitempty"`
	Titulo     string  `json:"titulo" validate:"required"`
	DriveURL   string  `json:"driveUrl" validate:"required"`
	Expediente *string `json:"expediente"`
	Nivel      *string `json:"nivel"`
}

// UpdateResolucionRequest carries a partial update; only non-nil fields apply.
type UpdateResolucionRequest struct {
	Titulo     *string `json:"titulo"`
	DriveURL   *string `json:"driveUrl"`
	Expediente *string `json:"expediente"`
	Nivel      *string `json:"nivel"`
}

// ResolucionService orchestrates the resolution store.
type ResolucionService struct {
	repo      resolucionRepository
	docentes  docenteFinder
	cache     lookupCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResolucionService constructs a ResolucionService.
func NewResolucionService(repo resolucionRepository, docentes docenteFinder, cache lookupCache, validate *validator.Validate, logger *zap.Logger) *ResolucionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolucionService{repo: repo, docentes: docentes, cache: cache, validator: validate, logger: logger}
}

// Create publishes a resolucion. Creation is idempotent on (titulo, driveUrl):
// an existing pair returns the stored record flagged as already existing.
func (s *ResolucionService) Create(ctx context.Context, req CreateResolucionRequest, creadoPor string) (*models.Resolucion, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completá título y URL")
	}

	titulo := strings.TrimSpace(req.Titulo)
	driveURL := strings.TrimSpace(req.DriveURL)
	if titulo == "" || driveURL == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "completá título y URL")
	}

	nivel, err := normalizeNivel(req.Nivel)
	if err != nil {
		return nil, false, err
	}

	docenteDNI := normalizeOptional(req.DocenteDNI)
	if docenteDNI != nil {
		if !models.ValidDNI(*docenteDNI) {
			return nil, false, appErrors.Clone(appErrors.ErrValidation, "DNI inválido")
		}
		if _, err := s.docentes.FindByDNI(ctx, *docenteDNI); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, appErrors.Clone(appErrors.ErrNotFound, "docente no existe")
			}
			return nil, false, appErrors.FromStore(err, "no se pudo consultar el docente")
		}
	}

	existing, err := s.repo.FindByTituloURL(ctx, titulo, driveURL)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.FromStore(err, "no se pudo consultar la resolución")
	}
	if existing != nil {
		return existing, true, nil
	}

	resolucion := &models.Resolucion{
		DocenteDNI: docenteDNI,
		Titulo:     titulo,
		DriveURL:   driveURL,
		Expediente: normalizeOptional(req.Expediente),
		Nivel:      nivel,
		CreadoPor:  creadoPor,
	}
	if err := s.repo.Create(ctx, resolucion); err != nil {
		return nil, false, appErrors.FromStore(err, "no se pudo crear la resolución")
	}
	s.invalidateLookups(ctx)
	return resolucion, false, nil
}

// Update applies only the supplied fields to an existing resolucion.
func (s *ResolucionService) Update(ctx context.Context, id string, req UpdateResolucionRequest) (*models.Resolucion, error) {
	resolucion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resolución no encontrada")
		}
		return nil, appErrors.FromStore(err, "no se pudo consultar la resolución")
	}

	if req.Titulo != nil {
		titulo := strings.TrimSpace(*req.Titulo)
		if titulo == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "el título no puede quedar vacío")
		}
		resolucion.Titulo = titulo
	}
	if req.DriveURL != nil {
		driveURL := strings.TrimSpace(*req.DriveURL)
		if driveURL == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "la URL no puede quedar vacía")
		}
		resolucion.DriveURL = driveURL
	}
	if req.Expediente != nil {
		resolucion.Expediente = normalizeOptional(req.Expediente)
	}
	if req.Nivel != nil {
		nivel, err := normalizeNivel(req.Nivel)
		if err != nil {
			return nil, err
		}
		resolucion.Nivel = nivel
	}

	if err := s.repo.Update(ctx, resolucion); err != nil {
		return nil, appErrors.FromStore(err, "no se pudo actualizar la resolución")
	}
	s.invalidateLookups(ctx)
	return resolucion, nil
}

// Delete removes a resolucion; its vinculos go with it. Acuses stay as audit
// records.
func (s *ResolucionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "resolución no encontrada")
		}
		return appErrors.FromStore(err, "no se pudo borrar la resolución")
	}
	s.invalidateLookups(ctx)
	return nil
}

// Search lists resoluciones matching the query, newest first.
func (s *ResolucionService) Search(ctx context.Context, q string) ([]models.Resolucion, error) {
	resoluciones, err := s.repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo listar resoluciones")
	}
	return resoluciones, nil
}

func (s *ResolucionService) invalidateLookups(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, lookupCachePattern); err != nil {
		s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
	}
}

func normalizeNivel(nivel *string) (*string, error) {
	value := normalizeOptional(nivel)
	if value == nil {
		return nil, nil
	}
	upper := strings.ToUpper(*value)
	if !models.ValidNivel(upper) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nivel inválido")
	}
	return &upper, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
