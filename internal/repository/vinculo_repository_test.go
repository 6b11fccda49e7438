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
)

func newVinculoRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestVinculoRepositoryUpsertPairs(t *testing.T) {
	db, mock, cleanup := newVinculoRepoMock(t)
	defer cleanup()
	repo := NewVinculoRepository(db)

	mock.ExpectExec("INSERT INTO vinculos").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.UpsertPairs(context.Background(), "r1", []string{"12345678", "23456789"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVinculoRepositoryUpsertPairsEmpty(t *testing.T) {
	db, mock, cleanup := newVinculoRepoMock(t)
	defer cleanup()
	repo := NewVinculoRepository(db)

	require.NoError(t, repo.UpsertPairs(context.Background(), "r1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVinculoRepositoryDeleteAbsentPair(t *testing.T) {
	db, mock, cleanup := newVinculoRepoMock(t)
	defer cleanup()
	repo := NewVinculoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vinculos WHERE resolucion_id = $1 AND docente_dni = $2")).
		WithArgs("r1", "12345678").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "r1", "12345678"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVinculoRepositoryListByResolucion(t *testing.T) {
	db, mock, cleanup := newVinculoRepoMock(t)
	defer cleanup()
	repo := NewVinculoRepository(db)

	rows := sqlmock.NewRows([]string{"resolucion_id", "docente_dni", "created_at"}).
		AddRow("r1", "12345678", time.Now()).
		AddRow("r1", "23456789", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM vinculos WHERE resolucion_id = $1 ORDER BY created_at ASC")).
		WithArgs("r1").
		WillReturnRows(rows)

	vinculos, err := repo.ListByResolucion(context.Background(), "r1")
	require.NoError(t, err)
	assert.Len(t, vinculos, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVinculoRepositoryListByDocente(t *testing.T) {
	db, mock, cleanup := newVinculoRepoMock(t)
	defer cleanup()
	repo := NewVinculoRepository(db)

	rows := sqlmock.NewRows([]string{"resolucion_id", "docente_dni", "created_at"}).
		AddRow("r1", "12345678", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM vinculos WHERE docente_dni = $1 ORDER BY created_at ASC")).
		WithArgs("12345678").
		WillReturnRows(rows)

	vinculos, err := repo.ListByDocente(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Len(t, vinculos, 1)
	assert.Equal(t, "r1", vinculos[0].ResolucionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
