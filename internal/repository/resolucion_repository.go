package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davideme94/sad-proyecto/internal/models"
)

const resolucionColumns = `id, docente_dni, titulo, drive_url, expediente, nivel, creado_por, created_at, updated_at`

// ResolucionRepository manages persistence for published resolutions.
type ResolucionRepository struct {
	db *sqlx.DB
}

// NewResolucionRepository constructs a ResolucionRepository.
func NewResolucionRepository(db *sqlx.DB) *ResolucionRepository {
	return &ResolucionRepository{db: db}
}

// FindByID fetches a resolucion by ID.
func (r *ResolucionRepository) FindByID(ctx context.Context, id string) (*models.Resolucion, error) {
	query := fmt.Sprintf(`SELECT %s FROM resoluciones WHERE id = $1`, resolucionColumns)
	var resolucion models.Resolucion
	if err := r.db.GetContext(ctx, &resolucion, query, id); err != nil {
		return nil, err
	}
	return &resolucion, nil
}

// FindByTituloURL fetches a resolucion by its natural duplicate key.
func (r *ResolucionRepository) FindByTituloURL(ctx context.Context, titulo, driveURL string) (*models.Resolucion, error) {
	query := fmt.Sprintf(`SELECT %s FROM resoluciones WHERE titulo = $1 AND drive_url = $2`, resolucionColumns)
	var resolucion models.Resolucion
	if err := r.db.GetContext(ctx, &resolucion, query, titulo, driveURL); err != nil {
		return nil, err
	}
	return &resolucion, nil
}

// FindByIDs resolves a batch of resolucion IDs; missing IDs are skipped.
func (r *ResolucionRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Resolucion, error) {
	if len(ids) == 0 {
		return []models.Resolucion{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM resoluciones WHERE id = ANY($1)`, resolucionColumns)
	resoluciones := []models.Resolucion{}
	if err := r.db.SelectContext(ctx, &resoluciones, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("resolve resoluciones: %w", err)
	}
	return resoluciones, nil
}

// Search returns resoluciones whose titulo contains the query, newest first.
func (r *ResolucionRepository) Search(ctx context.Context, q string) ([]models.Resolucion, error) {
	query := fmt.Sprintf(`SELECT %s FROM resoluciones`, resolucionColumns)
	args := []interface{}{}
	if q != "" {
		query += ` WHERE titulo ILIKE $1`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	query += ` ORDER BY created_at DESC`

	resoluciones := []models.Resolucion{}
	if err := r.db.SelectContext(ctx, &resoluciones, query, args...); err != nil {
		return nil, fmt.Errorf("search resoluciones: %w", err)
	}
	return resoluciones, nil
}

// ListByDocente returns resoluciones directly associated with the docente.
func (r *ResolucionRepository) ListByDocente(ctx context.Context, dni string) ([]models.Resolucion, error) {
	query := fmt.Sprintf(`SELECT %s FROM resoluciones WHERE docente_dni = $1 ORDER BY created_at DESC`, resolucionColumns)
	resoluciones := []models.Resolucion{}
	if err := r.db.SelectContext(ctx, &resoluciones, query, dni); err != nil {
		return nil, fmt.Errorf("list resoluciones by docente: %w", err)
	}
	return resoluciones, nil
}

// Create inserts a new resolucion record.
func (r *ResolucionRepository) Create(ctx context.Context, resolucion *models.Resolucion) error {
	if resolucion.ID == "" {
		resolucion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	resolucion.CreatedAt = now
	resolucion.UpdatedAt = now

	const query = `INSERT INTO resoluciones (id, docente_dni, titulo, drive_url, expediente, nivel, creado_por, created_at, updated_at)
		VALUES (:id, :docente_dni, :titulo, :drive_url, :expediente, :nivel, :creado_por, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resolucion); err != nil {
		return fmt.Errorf("create resolucion: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing resolucion.
func (r *ResolucionRepository) Update(ctx context.Context, resolucion *models.Resolucion) error {
	resolucion.UpdatedAt = time.Now().UTC()
	const query = `UPDATE resoluciones SET titulo = :titulo, drive_url = :drive_url, expediente = :expediente, nivel = :nivel, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, resolucion); err != nil {
		return fmt.Errorf("update resolucion: %w", err)
	}
	return nil
}

// Delete removes a resolucion and its vinculos in one transaction. Returns
// sql.ErrNoRows when the resolucion does not exist.
func (r *ResolucionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete resolucion: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM resoluciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resolucion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resolucion: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vinculos WHERE resolucion_id = $1`, id); err != nil {
		return fmt.Errorf("cascade vinculos: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete resolucion: %w", err)
	}
	return nil
}
