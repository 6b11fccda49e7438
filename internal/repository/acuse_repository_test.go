package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davideme94/sad-proyecto/internal/models"
)

func newAcuseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAcuseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newAcuseRepoMock(t)
	defer cleanup()
	repo := NewAcuseRepository(db)

	mock.ExpectExec("INSERT INTO acuses").
		WillReturnResult(sqlmock.NewResult(1, 1))

	acuse := &models.Acuse{
		DocenteDNI:     "12345678",
		ResolucionID:   "r1",
		NombreCompleto: "Ana Pérez",
		Email:          "ana@example.com",
		Acepto:         true,
		TextoLegal:     "Me doy por notificada.",
		FirmadoEn:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), acuse))
	assert.NotEmpty(t, acuse.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcuseRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newAcuseRepoMock(t)
	defer cleanup()
	repo := NewAcuseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "docente_dni", "resolucion_id", "nombre_completo", "email", "acepto", "texto_legal", "ip_hash", "user_agent", "firmado_en"}).
		AddRow("a2", "12345678", "r1", "Ana Pérez", "ana@example.com", true, "texto", "hash", "", time.Now()).
		AddRow("a1", "23456789", "r2", "Bruno Díaz", "bruno@example.com", true, "texto", "hash", "", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM acuses ORDER BY firmado_en DESC")).
		WillReturnRows(rows)

	acuses, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, acuses, 2)
	assert.Equal(t, "a2", acuses[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcuseRepositoryAcknowledgedSet(t *testing.T) {
	db, mock, cleanup := newAcuseRepoMock(t)
	defer cleanup()
	repo := NewAcuseRepository(db)

	rows := sqlmock.NewRows([]string{"resolucion_id"}).AddRow("r1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT resolucion_id FROM acuses WHERE docente_dni = $1 AND resolucion_id = ANY($2)")).
		WillReturnRows(rows)

	set, err := repo.AcknowledgedSet(context.Background(), "12345678", []string{"r1", "r2"})
	require.NoError(t, err)
	assert.Contains(t, set, "r1")
	assert.NotContains(t, set, "r2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcuseRepositoryAcknowledgedSetEmpty(t *testing.T) {
	db, _, cleanup := newAcuseRepoMock(t)
	defer cleanup()
	repo := NewAcuseRepository(db)

	set, err := repo.AcknowledgedSet(context.Background(), "12345678", nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}
