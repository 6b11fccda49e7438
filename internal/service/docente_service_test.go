package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davideme94/sad-proyecto/internal/models"
	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
)

type mockDocenteRepo struct {
	items   map[string]*models.Docente
	deleted []string
	findErr error
}

func (m *mockDocenteRepo) FindByDNI(ctx context.Context, dni string) (*models.Docente, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if docente, ok := m.items[dni]; ok {
		cp := *docente
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDocenteRepo) ExistingDNIs(ctx context.Context, dnis []string) (map[string]struct{}, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make(map[string]struct{})
	for _, dni := range dnis {
		if _, ok := m.items[dni]; ok {
			out[dni] = struct{}{}
		}
	}
	return out, nil
}

func (m *mockDocenteRepo) Search(ctx context.Context, q string) ([]models.Docente, error) {
	out := []models.Docente{}
	for _, d := range m.items {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDocenteRepo) Create(ctx context.Context, docente *models.Docente) error {
	if m.items == nil {
		m.items = make(map[string]*models.Docente)
	}
	now := time.Now().UTC()
	docente.CreatedAt = now
	docente.UpdatedAt = now
	cp := *docente
	m.items[docente.DNI] = &cp
	return nil
}

func (m *mockDocenteRepo) UpdateNombre(ctx context.Context, dni, nombre string) error {
	if d, ok := m.items[dni]; ok {
		d.Nombre = nombre
	}
	return nil
}

func (m *mockDocenteRepo) Delete(ctx context.Context, dni string) error {
	if _, ok := m.items[dni]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, dni)
	m.deleted = append(m.deleted, dni)
	return nil
}

type mockLookupCache struct {
	deletedKeys     []string
	deletedPatterns []string
}

func (m *mockLookupCache) Delete(ctx context.Context, key string) error {
	m.deletedKeys = append(m.deletedKeys, key)
	return nil
}

func (m *mockLookupCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deletedPatterns = append(m.deletedPatterns, pattern)
	return nil
}

func TestDocenteServiceUpsertCreates(t *testing.T) {
	repo := &mockDocenteRepo{}
	cache := &mockLookupCache{}
	svc := NewDocenteService(repo, cache, nil, nil)

	docente, verdict, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "  Ana   Pérez "})
	require.NoError(t, err)
	assert.Equal(t, models.UpsertCreated, verdict)
	assert.Equal(t, "Ana Pérez", docente.Nombre)
	assert.Contains(t, cache.deletedKeys, "lookup:12345678")
}

func TestDocenteServiceUpsertSameNameIsNoop(t *testing.T) {
	repo := &mockDocenteRepo{}
	svc := NewDocenteService(repo, &mockLookupCache{}, nil, nil)

	_, verdict, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana Pérez"})
	require.NoError(t, err)
	require.Equal(t, models.UpsertCreated, verdict)

	_, verdict, err = svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana  Pérez"})
	require.NoError(t, err)
	assert.Equal(t, models.UpsertAlreadyExisted, verdict)
}

func TestDocenteServiceUpsertRenames(t *testing.T) {
	repo := &mockDocenteRepo{}
	svc := NewDocenteService(repo, &mockLookupCache{}, nil, nil)

	_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana Pérez"})
	require.NoError(t, err)

	docente, verdict, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana María Pérez"})
	require.NoError(t, err)
	assert.Equal(t, models.UpsertUpdated, verdict)
	assert.Equal(t, "Ana María Pérez", docente.Nombre)
	assert.Equal(t, "Ana María Pérez", repo.items["12345678"].Nombre)
}

func TestDocenteServiceUpsertRejectsBadDNI(t *testing.T) {
	svc := NewDocenteService(&mockDocenteRepo{}, nil, nil, nil)

	for _, dni := range []string{"", "123", "12a45678", "1234567890"} {
		_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: dni, Nombre: "Ana"})
		require.Error(t, err, "dni=%q", dni)
		assert.Equal(t, 400, appErrors.FromError(err).Status)
	}
}

func TestDocenteServiceUpsertRejectsEmptyName(t *testing.T) {
	svc := NewDocenteService(&mockDocenteRepo{}, nil, nil, nil)

	_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "   "})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestDocenteServiceBulkUpsertCollectsErrors(t *testing.T) {
	repo := &mockDocenteRepo{}
	svc := NewDocenteService(repo, &mockLookupCache{}, nil, nil)

	result, err := svc.BulkUpsert(context.Background(), BulkUpsertRequest{Items: []UpsertDocenteRequest{
		{DNI: "12345678", Nombre: "Ana Pérez"},
		{DNI: "bad", Nombre: "Bruno Díaz"},
		{DNI: "23456789", Nombre: "Carla Gómez"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad", result.Errors[0].DNI)
	assert.Len(t, repo.items, 2)
}

func TestDocenteServiceBulkUpsertCountsUpdates(t *testing.T) {
	repo := &mockDocenteRepo{}
	svc := NewDocenteService(repo, &mockLookupCache{}, nil, nil)

	_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana Pérez"})
	require.NoError(t, err)

	result, err := svc.BulkUpsert(context.Background(), BulkUpsertRequest{Items: []UpsertDocenteRequest{
		{DNI: "12345678", Nombre: "Ana M. Pérez"},
		{DNI: "23456789", Nombre: "Carla Gómez"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
}

func TestDocenteServiceBulkUpsertEmptyBatch(t *testing.T) {
	svc := NewDocenteService(&mockDocenteRepo{}, nil, nil, nil)

	_, err := svc.BulkUpsert(context.Background(), BulkUpsertRequest{})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestDocenteServiceDeleteMissing(t *testing.T) {
	svc := NewDocenteService(&mockDocenteRepo{}, nil, nil, nil)

	err := svc.Delete(context.Background(), "12345678")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestDocenteServiceDeleteInvalidatesLookup(t *testing.T) {
	repo := &mockDocenteRepo{}
	cache := &mockLookupCache{}
	svc := NewDocenteService(repo, cache, nil, nil)

	_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana Pérez"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "12345678"))
	assert.Contains(t, repo.deleted, "12345678")
	assert.Contains(t, cache.deletedKeys, "lookup:12345678")
}

func TestDocenteServiceUpsertStoreDown(t *testing.T) {
	repo := &mockDocenteRepo{findErr: context.DeadlineExceeded}
	svc := NewDocenteService(repo, nil, nil, nil)

	_, _, err := svc.Upsert(context.Background(), UpsertDocenteRequest{DNI: "12345678", Nombre: "Ana"})
	require.Error(t, err)
	assert.Equal(t, 503, appErrors.FromError(err).Status)
}
