package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/davideme94/sad-proyecto/internal/models"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
)

const lookupCachePattern = "lookup:*"

func lookupCacheKey(dni string) string {
	return "lookup:" + dni
}

type acuseChecker interface {
	AcknowledgedSet(ctx context.Context, dni string, resolucionIDs []string) (map[string]struct{}, error)
}

type vinculoLister interface {
	ListByDocente(ctx context.Context, dni string) ([]models.Vinculo, error)
}

type lookupCacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// LookupResult is the public answer to "what can this docente see".
type LookupResult struct {
	Nombre       *string                     `json:"nombre"`
	DNI          string                      `json:"dni"`
	Resoluciones []models.ResolucionConAcuse `json:"resoluciones"`
}

// LookupService composes the registry, the resolution store, the linkage table
// and the ledger into the single public view.
type LookupService struct {
	docentes     docenteFinder
	resoluciones resolucionRepository
	vinculos     vinculoLister
	acuses       acuseChecker
	cache        lookupCacheStore
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewLookupService constructs a LookupService. A nil cache disables caching.
func NewLookupService(docentes docenteFinder, resoluciones resolucionRepository, vinculos vinculoLister, acuses acuseChecker, cache lookupCacheStore, cacheTTL time.Duration, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{
		docentes:     docentes,
		resoluciones: resoluciones,
		vinculos:     vinculos,
		acuses:       acuses,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Lookup returns every resolucion visible to the docente (direct association
// union vinculos, deduplicated, newest first) annotated with whether any acuse
// already covers it. An unknown dni is not an error; the nombre comes back
// null. A store failure fails the whole call, never a partial list.
func (s *LookupService) Lookup(ctx context.Context, dni string) (*LookupResult, error) {
	if !models.ValidDNI(dni) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "DNI inválido")
	}

	if s.cache != nil {
		var cached LookupResult
		if err := s.cache.Get(ctx, lookupCacheKey(dni), &cached); err == nil {
			return &cached, nil
		}
	}

	result := &LookupResult{DNI: dni, Resoluciones: []models.ResolucionConAcuse{}}

	docente, err := s.docentes.FindByDNI(ctx, dni)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.FromStore(err, "no se pudo consultar el docente")
	}
	if docente != nil {
		result.Nombre = &docente.Nombre
	}

	directas, err := s.resoluciones.ListByDocente(ctx, dni)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo consultar resoluciones")
	}

	vinculos, err := s.vinculos.ListByDocente(ctx, dni)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo consultar vínculos")
	}

	merged := make([]models.Resolucion, 0, len(directas)+len(vinculos))
	seen := make(map[string]struct{}, len(directas)+len(vinculos))
	for _, r := range directas {
		merged = append(merged, r)
		seen[r.ID] = struct{}{}
	}

	linkedIDs := make([]string, 0, len(vinculos))
	for _, v := range vinculos {
		if _, dup := seen[v.ResolucionID]; dup {
			continue
		}
		seen[v.ResolucionID] = struct{}{}
		linkedIDs = append(linkedIDs, v.ResolucionID)
	}
	// Vinculos pointing at a deleted resolucion resolve to nothing and drop out.
	linked, err := s.resoluciones.FindByIDs(ctx, linkedIDs)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo consultar resoluciones")
	}
	merged = append(merged, linked...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	ids := make([]string, 0, len(merged))
	for _, r := range merged {
		ids = append(ids, r.ID)
	}
	acknowledged, err := s.acuses.AcknowledgedSet(ctx, dni, ids)
	if err != nil {
		return nil, appErrors.FromStore(err, "no se pudo consultar acuses")
	}

	for _, r := range merged {
		_, ya := acknowledged[r.ID]
		result.Resoluciones = append(result.Resoluciones, models.ResolucionConAcuse{Resolucion: r, YaAcuso: ya})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, lookupCacheKey(dni), result, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache lookup", zap.Error(err))
		}
	}
	return result, nil
}
