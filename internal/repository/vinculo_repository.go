package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davideme94/sad-proyecto/internal/models"
)

// VinculoRepository manages the docente ↔ resolucion association table.
type VinculoRepository struct {
	db *sqlx.DB
}

// NewVinculoRepository constructs a VinculoRepository.
func NewVinculoRepository(db *sqlx.DB) *VinculoRepository {
	return &VinculoRepository{db: db}
}

// UpsertPairs links every dni to the resolucion in a single statement. The
// uniqueness of each pair is enforced by the store (ON CONFLICT DO NOTHING),
// so concurrent callers linking the same pair never produce duplicates.
func (r *VinculoRepository) UpsertPairs(ctx context.Context, resolucionID string, dnis []string) error {
	if len(dnis) == 0 {
		return nil
	}
	const query = `INSERT INTO vinculos (resolucion_id, docente_dni, created_at)
		SELECT $1, unnest($2::text[]), $3
		ON CONFLICT (resolucion_id, docente_dni) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, resolucionID, pq.Array(dnis), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert vinculos: %w", err)
	}
	return nil
}

// Delete removes the exact pair. Removing an absent pair is not an error.
func (r *VinculoRepository) Delete(ctx context.Context, resolucionID, dni string) error {
	const query = `DELETE FROM vinculos WHERE resolucion_id = $1 AND docente_dni = $2`
	if _, err := r.db.ExecContext(ctx, query, resolucionID, dni); err != nil {
		return fmt.Errorf("delete vinculo: %w", err)
	}
	return nil
}

// ListByResolucion returns all vinculos for a resolucion.
func (r *VinculoRepository) ListByResolucion(ctx context.Context, resolucionID string) ([]models.Vinculo, error) {
	const query = `SELECT resolucion_id, docente_dni, created_at FROM vinculos WHERE resolucion_id = $1 ORDER BY created_at ASC`
	vinculos := []models.Vinculo{}
	if err := r.db.SelectContext(ctx, &vinculos, query, resolucionID); err != nil {
		return nil, fmt.Errorf("list vinculos by resolucion: %w", err)
	}
	return vinculos, nil
}

// ListByDocente returns all vinculos for a docente.
func (r *VinculoRepository) ListByDocente(ctx context.Context, dni string) ([]models.Vinculo, error) {
	const query = `SELECT resolucion_id, docente_dni, created_at FROM vinculos WHERE docente_dni = $1 ORDER BY created_at ASC`
	vinculos := []models.Vinculo{}
	if err := r.db.SelectContext(ctx, &vinculos, query, dni); err != nil {
		return nil, fmt.Errorf("list vinculos by docente: %w", err)
	}
	return vinculos, nil
}
