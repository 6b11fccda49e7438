package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/davideme94/sad-proyecto/internal/models"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
)

type vinculoRepository interface {
	UpsertPairs(ctx context.Context, resolucionID string, dnis []string) error
	Delete(ctx context.Context, resolucionID, dni string) error
	ListByResolucion(ctx context.Context, resolucionID string) ([]models.Vinculo, error)
	ListByDocente(ctx context.Context, dni string) ([]models.Vinculo, error)
}

type docenteChecker interface {
	ExistingDNIs(ctx context.Context, dnis []string) (map[string]struct{}, error)
}

type resolucionFinder interface {
	FindByID(ctx context.Context, id string) (*models.Resolucion, error)
}

// LinkManyRequest is the batch-link payload.
type LinkManyRequest struct {
	ResolucionID string   `json:"resolucionId"`
	DNIs         []string `json:"dnis"`
}

// UnlinkRequest removes one exact pair.
type UnlinkRequest struct {
	ResolucionID string `json:"resolucionId"`
	DocenteDNI   string `json:"docenteDni"`
}

// LinkManyResult reports how a batch went: Vinculados counts the IDs that were
// linked (re-linking an existing pair still counts), Ignorados lists the IDs
// skipped for being malformed or unknown.
type LinkManyResult struct {
	Vinculados int      `json:"vinculados"`
	Ignorados  []string `json:"ignorados"`
}

// VinculoService orchestrates the linkage table.
type VinculoService struct {
	repo         vinculoRepository
	docentes     docenteChecker
	resoluciones resolucionFinder
	cache        lookupCache
	logger       *zap.Logger
}

// NewVinculoService constructs a VinculoService.
func NewVinculoService(repo vinculoRepository, docentes docenteChecker, resoluciones resolucionFinder, cache lookupCache, logger *zap.Logger) *VinculoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VinculoService{repo: repo, docentes: docentes, resoluciones: resoluciones, cache: cache, logger: logger}
}

// LinkMany links each candidate docente to the resolucion. Malformed or
// unknown IDs land in Ignorados without failing the rest of the batch.
func (s *VinculoService) LinkMany(ctx context.Context, req LinkManyRequest) (*LinkManyResult, error) {
	if req.ResolucionID == "" || len(req.DNIs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "elegí una resolución y al menos un docente")
	}

	if _, err := s.resoluciones.FindByID(ctx, req.ResolucionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resolución no encontrada")
		}
		return nil, appErrors.FromStore(err, "no se pudo consultar la resolución")
	}

	result := &LinkManyResult{Ignorados: []string{}}

	seen := make(map[string]struct{}, len(req.DNIs))
	wellFormed := make([]string, 0, len(req.DNIs))
	for _, dni := range req.DNIs {
		if _, dup := seen[dni]; dup {
			continue
		}
		seen[dni] = struct{}{}
		if !models.ValidDNI(dni) {
			result.Ignorados = append(result.Ignorados, dni)
			continue
		}
		wellFormed = append(wellFormed, dni)
	}

	known, err := s.docentes.ExistingDNIs(ctx, wellFormed)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo verificar los docentes")
	}

	valid := make([]string, 0, len(wellFormed))
	for _, dni := range wellFormed {
		if _, ok := known[dni]; ok {
			valid = append(valid, dni)
		} else {
			result.Ignorados = append(result.Ignorados, dni)
		}
	}

	if err := s.repo.UpsertPairs(ctx, req.ResolucionID, valid); err != nil {
		return nil, appErrors.FromStore(err, "no se pudo vincular")
	}
	result.Vinculados = len(valid)

	for _, dni := range valid {
		s.invalidateLookup(ctx, dni)
	}
	return result, nil
}

// Unlink removes the exact pair. An absent pair is not an error.
func (s *VinculoService) Unlink(ctx context.Context, req UnlinkRequest) error {
	if req.ResolucionID == "" || req.DocenteDNI == "" {
		return appErrors.Clone(appErrors.ErrValidation, "datos inválidos")
	}
	if err := s.repo.Delete(ctx, req.ResolucionID, req.DocenteDNI); err != nil {
		return appErrors.FromStore(err, "no se pudo desvincular")
	}
	s.invalidateLookup(ctx, req.DocenteDNI)
	return nil
}

// ListByResolucion returns the vinculos for one resolucion.
func (s *VinculoService) ListByResolucion(ctx context.Context, resolucionID string) ([]models.Vinculo, error) {
	vinculos, err := s.repo.ListByResolucion(ctx, resolucionID)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo listar vínculos")
	}
	return vinculos, nil
}

func (s *VinculoService) invalidateLookup(ctx context.Context, dni string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, lookupCacheKey(dni)); err != nil {
		s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
	}
}
