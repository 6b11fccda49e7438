package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/service"
)

type resolucionRepoMock struct {
	resolucionFinderMock
}

func (m *resolucionRepoMock) FindByTituloURL(ctx context.Context, titulo, driveURL string) (*models.Resolucion, error) {
	return nil, nil
}

func (m *resolucionRepoMock) FindByIDs(ctx context.Context, ids []string) ([]models.Resolucion, error) {
	out := []models.Resolucion{}
	for _, id := range ids {
		if r, ok := m.items[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *resolucionRepoMock) Search(ctx context.Context, q string) ([]models.Resolucion, error) {
	return nil, nil
}

func (m *resolucionRepoMock) ListByDocente(ctx context.Context, dni string) ([]models.Resolucion, error) {
	out := []models.Resolucion{}
	for _, r := range m.items {
		if r.DocenteDNI != nil && *r.DocenteDNI == dni {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *resolucionRepoMock) Create(ctx context.Context, resolucion *models.Resolucion) error {
	return nil
}

func (m *resolucionRepoMock) Update(ctx context.Context, resolucion *models.Resolucion) error {
	return nil
}

func (m *resolucionRepoMock) Delete(ctx context.Context, id string) error {
	return nil
}

type vinculoListerMock struct {
	vinculos []models.Vinculo
}

func (m *vinculoListerMock) ListByDocente(ctx context.Context, dni string) ([]models.Vinculo, error) {
	out := []models.Vinculo{}
	for _, v := range m.vinculos {
		if v.DocenteDNI == dni {
			out = append(out, v)
		}
	}
	return out, nil
}

func newLookupRouter(docentes *docenteRepoMock, resoluciones *resolucionRepoMock, vinculos *vinculoListerMock, acuses *acuseRepoMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewLookupService(docentes, resoluciones, vinculos, &acknowledgeCheckerMock{acuses}, nil, 0, nil)
	h := NewLookupHandler(svc)
	r := gin.New()
	r.GET("/api/public/buscar", h.Buscar)
	return r
}

type acknowledgeCheckerMock struct{ repo *acuseRepoMock }

func (a *acknowledgeCheckerMock) AcknowledgedSet(ctx context.Context, dni string, resolucionIDs []string) (map[string]struct{}, error) {
	wanted := make(map[string]struct{}, len(resolucionIDs))
	for _, id := range resolucionIDs {
		wanted[id] = struct{}{}
	}
	set := map[string]struct{}{}
	for _, acuse := range a.repo.created {
		if acuse.DocenteDNI != dni {
			continue
		}
		if _, ok := wanted[acuse.ResolucionID]; ok {
			set[acuse.ResolucionID] = struct{}{}
		}
	}
	return set, nil
}

func TestLookupHandlerRejectsBadDNI(t *testing.T) {
	r := newLookupRouter(&docenteRepoMock{}, &resolucionRepoMock{}, &vinculoListerMock{}, &acuseRepoMock{})

	req, _ := http.NewRequest(http.MethodGet, "/api/public/buscar?dni=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"DNI inválido"}`, w.Body.String())
}

func TestLookupHandlerAggregates(t *testing.T) {
	dni := "12345678"
	docentes := &docenteRepoMock{items: map[string]*models.Docente{
		dni: {DNI: dni, Nombre: "Ana Pérez"},
	}}
	resoluciones := &resolucionRepoMock{resolucionFinderMock{items: map[string]*models.Resolucion{
		"r1": {ID: "r1", DocenteDNI: &dni, Titulo: "Resolución 100/24", DriveURL: "https://drive.example/abc", CreatedAt: time.Now().Add(-time.Hour)},
		"r2": {ID: "r2", Titulo: "Resolución 200/24", DriveURL: "https://drive.example/def", CreatedAt: time.Now()},
	}}}
	vinculos := &vinculoListerMock{vinculos: []models.Vinculo{{ResolucionID: "r2", DocenteDNI: dni}}}
	acuses := &acuseRepoMock{created: []models.Acuse{{DocenteDNI: dni, ResolucionID: "r1"}}}
	r := newLookupRouter(docentes, resoluciones, vinculos, acuses)

	req, _ := http.NewRequest(http.MethodGet, "/api/public/buscar?dni="+dni, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Nombre       *string `json:"nombre"`
		DNI          string  `json:"dni"`
		Resoluciones []struct {
			ID      string `json:"_id"`
			YaAcuso bool   `json:"yaAcuso"`
		} `json:"resoluciones"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Nombre)
	assert.Equal(t, "Ana Pérez", *res.Nombre)
	assert.Equal(t, dni, res.DNI)
	require.Len(t, res.Resoluciones, 2)
	assert.Equal(t, "r2", res.Resoluciones[0].ID)
	assert.False(t, res.Resoluciones[0].YaAcuso)
	assert.Equal(t, "r1", res.Resoluciones[1].ID)
	assert.True(t, res.Resoluciones[1].YaAcuso)
}

func TestLookupHandlerUnknownDNI(t *testing.T) {
	r := newLookupRouter(&docenteRepoMock{}, &resolucionRepoMock{}, &vinculoListerMock{}, &acuseRepoMock{})

	req, _ := http.NewRequest(http.MethodGet, "/api/public/buscar?dni=99999999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Nil(t, res["nombre"])
	assert.Empty(t, res["resoluciones"])
}
