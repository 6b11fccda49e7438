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

type mockResolucionRepo struct {
	items   map[string]*models.Resolucion
	deleted []string
	nextID  int
}

func (m *mockResolucionRepo) FindByID(ctx context.Context, id string) (*models.Resolucion, error) {
	if r, ok := m.items[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockResolucionRepo) FindByTituloURL(ctx context.Context, titulo, driveURL string) (*models.Resolucion, error) {
	for _, r := range m.items {
		if r.Titulo == titulo && r.DriveURL == driveURL {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockResolucionRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Resolucion, error) {
	out := []models.Resolucion{}
	for _, id := range ids {
		if r, ok := m.items[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockResolucionRepo) Search(ctx context.Context, q string) ([]models.Resolucion, error) {
	out := []models.Resolucion{}
	for _, r := range m.items {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockResolucionRepo) ListByDocente(ctx context.Context, dni string) ([]models.Resolucion, error) {
	out := []models.Resolucion{}
	for _, r := range m.items {
		if r.DocenteDNI != nil && *r.DocenteDNI == dni {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockResolucionRepo) Create(ctx context.Context, resolucion *models.Resolucion) error {
	if m.items == nil {
		m.items = make(map[string]*models.Resolucion)
	}
	if resolucion.ID == "" {
		m.nextID++
		resolucion.ID = "r" + string(rune('0'+m.nextID))
	}
	now := time.Now().UTC()
	resolucion.CreatedAt = now
	resolucion.UpdatedAt = now
	cp := *resolucion
	m.items[resolucion.ID] = &cp
	return nil
}

func (m *mockResolucionRepo) Update(ctx context.Context, resolucion *models.Resolucion) error {
	cp := *resolucion
	m.items[resolucion.ID] = &cp
	return nil
}

func (m *mockResolucionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func strPtr(s string) *string { return &s }

func newResolucionServiceForTest(docentes map[string]*models.Docente) (*ResolucionService, *mockResolucionRepo, *mockLookupCache) {
	repo := &mockResolucionRepo{}
	cache := &mockLookupCache{}
	svc := NewResolucionService(repo, &mockDocenteRepo{items: docentes}, cache, nil, nil)
	return svc, repo, cache
}

func TestResolucionServiceCreate(t *testing.T) {
	svc, repo, cache := newResolucionServiceForTest(nil)

	resolucion, alreadyExisted, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo:   " Resolución 100/24 ",
		DriveURL: " https://drive.example/abc ",
		Nivel:    strPtr("primaria"),
	}, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, alreadyExisted)
	assert.Equal(t, "Resolución 100/24", resolucion.Titulo)
	assert.Equal(t, "https://drive.example/abc", resolucion.DriveURL)
	require.NotNil(t, resolucion.Nivel)
	assert.Equal(t, "PRIMARIA", *resolucion.Nivel)
	assert.Equal(t, "admin@example.com", resolucion.CreadoPor)
	assert.Len(t, repo.items, 1)
	assert.Contains(t, cache.deletedPatterns, "lookup:*")
}

func TestResolucionServiceCreateIsIdempotent(t *testing.T) {
	svc, repo, _ := newResolucionServiceForTest(nil)

	first, alreadyExisted, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc",
	}, "")
	require.NoError(t, err)
	require.False(t, alreadyExisted)

	second, alreadyExisted, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc",
	}, "")
	require.NoError(t, err)
	assert.True(t, alreadyExisted)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.items, 1)
}

func TestResolucionServiceCreateRejectsBadNivel(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	_, _, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc", Nivel: strPtr("TERCIARIO"),
	}, "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestResolucionServiceCreateUnknownDocente(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	_, _, err := svc.Create(context.Background(), CreateResolucionRequest{
		DocenteDNI: strPtr("12345678"), Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc",
	}, "")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestResolucionServiceCreateWithDirectDocente(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(map[string]*models.Docente{
		"12345678": {DNI: "12345678", Nombre: "Ana Pérez"},
	})

	resolucion, _, err := svc.Create(context.Background(), CreateResolucionRequest{
		DocenteDNI: strPtr("12345678"), Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc",
	}, "")
	require.NoError(t, err)
	require.NotNil(t, resolucion.DocenteDNI)
	assert.Equal(t, "12345678", *resolucion.DocenteDNI)
}

func TestResolucionServiceCreateMissingFields(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	_, _, err := svc.Create(context.Background(), CreateResolucionRequest{Titulo: "x"}, "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestResolucionServiceUpdatePartial(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	created, _, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc", Expediente: strPtr("EXP-1"),
	}, "")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateResolucionRequest{
		Titulo: strPtr("Resolución 100/24 bis"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Resolución 100/24 bis", updated.Titulo)
	assert.Equal(t, "https://drive.example/abc", updated.DriveURL)
	require.NotNil(t, updated.Expediente)
	assert.Equal(t, "EXP-1", *updated.Expediente)
}

func TestResolucionServiceUpdateRejectsEmptyTitulo(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	created, _, err := svc.Create(context.Background(), CreateResolucionRequest{
		Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc",
	}, "")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, UpdateResolucionRequest{Titulo: strPtr("  ")})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestResolucionServiceUpdateMissing(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	_, err := svc.Update(context.Background(), "missing", UpdateResolucionRequest{})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestResolucionServiceDeleteMissing(t *testing.T) {
	svc, _, _ := newResolucionServiceForTest(nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
