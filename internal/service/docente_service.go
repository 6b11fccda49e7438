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

type docenteRepository interface {
	FindByDNI(ctx context.Context, dni string) (*models.Docente, error)
	Search(ctx context.Context, q string) ([]models.Docente, error)
	Create(ctx context.Context, docente *models.Docente) error
	UpdateNombre(ctx context.Context, dni, nombre string) error
	Delete(ctx context.Context, dni string) error
}

// lookupCache is the slice of the cache layer mutation services need to keep
// the public lookup fresh.
type lookupCache interface {
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// UpsertDocenteRequest is the payload for registering a docente.
type UpsertDocenteRequest struct {
	DNI    string `json:"dni" validate:"required"`
	Nombre string `json:"nombre" validate:"required"`
}

// BulkUpsertRequest carries a batch of docente rows.
type BulkUpsertRequest struct {
	Items []UpsertDocenteRequest `json:"items" validate:"required,min=1,dive"`
}

// BulkItemError reports a single failed row of a bulk upload.
type BulkItemError struct {
	DNI   string `json:"dni"`
	Error string `json:"error"`
}

// BulkUpsertResult summarises a bulk upload.
type BulkUpsertResult struct {
	Upserted int             `json:"upserted"`
	Updated  int             `json:"updated"`
	Errors   []BulkItemError `json:"errors"`
}

// DocenteService orchestrates the teacher registry.
type DocenteService struct {
	repo      docenteRepository
	cache     lookupCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocenteService constructs a DocenteService.
func NewDocenteService(repo docenteRepository, cache lookupCache, validate *validator.Validate, logger *zap.Logger) *DocenteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocenteService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Upsert creates or renames a docente and reports the verdict: created when
// the dni was unknown, updated when the stored name differed, alreadyExisted
// when the call changed nothing.
func (s *DocenteService) Upsert(ctx context.Context, req UpsertDocenteRequest) (*models.Docente, string, error) {
	nombre := NormalizeNombre(req.Nombre)
	if !models.ValidDNI(req.DNI) || nombre == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "datos inválidos (DNI 7-9 dígitos y nombre no vacío)")
	}

	existing, err := s.repo.FindByDNI(ctx, req.DNI)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", appErrors.FromStore(err, "no se pudo consultar el docente")
	}

	if existing == nil {
		docente := &models.Docente{DNI: req.DNI, Nombre: nombre}
		if err := s.repo.Create(ctx, docente); err != nil {
			return nil, "", appErrors.FromStore(err, "no se pudo crear el docente")
		}
		s.invalidateLookup(ctx, req.DNI)
		return docente, models.UpsertCreated, nil
	}

	if existing.Nombre == nombre {
		return existing, models.UpsertAlreadyExisted, nil
	}

	if err := s.repo.UpdateNombre(ctx, req.DNI, nombre); err != nil {
		return nil, "", appErrors.FromStore(err, "no se pudo actualizar el docente")
	}
	existing.Nombre = nombre
	s.invalidateLookup(ctx, req.DNI)
	return existing, models.UpsertUpdated, nil
}

// BulkUpsert applies a batch of rows. Per-row failures are collected and never
// abort the remaining rows.
func (s *DocenteService) BulkUpsert(ctx context.Context, req BulkUpsertRequest) (*BulkUpsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "carga masiva inválida")
	}

	result := &BulkUpsertResult{Errors: []BulkItemError{}}
	for _, item := range req.Items {
		_, verdict, err := s.Upsert(ctx, item)
		if err != nil {
			result.Errors = append(result.Errors, BulkItemError{DNI: item.DNI, Error: appErrors.FromError(err).Message})
			continue
		}
		if verdict == models.UpsertUpdated {
			result.Updated++
		} else {
			result.Upserted++
		}
	}
	return result, nil
}

// Search lists docentes matching the query, alphabetically by nombre.
func (s *DocenteService) Search(ctx context.Context, q string) ([]models.Docente, error) {
	docentes, err := s.repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo listar docentes")
	}
	return docentes, nil
}

// Delete removes a docente; its vinculos go with it.
func (s *DocenteService) Delete(ctx context.Context, dni string) error {
	if !models.ValidDNI(dni) {
		return appErrors.Clone(appErrors.ErrValidation, "DNI inválido")
	}
	if err := s.repo.Delete(ctx, dni); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "docente no existe")
		}
		return appErrors.FromStore(err, "no se pudo borrar el docente")
	}
	s.invalidateLookup(ctx, dni)
	return nil
}

func (s *DocenteService) invalidateLookup(ctx context.Context, dni string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, lookupCacheKey(dni)); err != nil {
		s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
	}
}

// NormalizeNombre collapses internal whitespace and trims the edges.
func NormalizeNombre(nombre string) string {
	return strings.Join(strings.Fields(nombre), " ")
}
