package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davideme94/sad-proyecto/internal/models"
)

// escapeLike neutralises ILIKE metacharacters so user queries match literally.
func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}

// DocenteRepository manages persistence for the teacher registry.
type DocenteRepository struct {
	db *sqlx.DB
}

// NewDocenteRepository constructs a DocenteRepository.
func NewDocenteRepository(db *sqlx.DB) *DocenteRepository {
	return &DocenteRepository{db: db}
}

// FindByDNI fetches a docente by national ID.
func (r *DocenteRepository) FindByDNI(ctx context.Context, dni string) (*models.Docente, error) {
	const query = `SELECT dni, nombre, created_at, updated_at FROM docentes WHERE dni = $1`
	var docente models.Docente
	if err := r.db.GetContext(ctx, &docente, query, dni); err != nil {
		return nil, err
	}
	return &docente, nil
}

// Search returns docentes whose dni or nombre contains the query, ordered by
// nombre. An empty query returns the whole registry.
func (r *DocenteRepository) Search(ctx context.Context, q string) ([]models.Docente, error) {
	query := `SELECT dni, nombre, created_at, updated_at FROM docentes`
	args := []interface{}{}
	if q != "" {
		query += ` WHERE dni ILIKE $1 OR nombre ILIKE $1`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	query += ` ORDER BY nombre ASC`

	docentes := []models.Docente{}
	if err := r.db.SelectContext(ctx, &docentes, query, args...); err != nil {
		return nil, fmt.Errorf("search docentes: %w", err)
	}
	return docentes, nil
}

// ExistingDNIs returns which of the candidate IDs are present in the registry.
func (r *DocenteRepository) ExistingDNIs(ctx context.Context, dnis []string) (map[string]struct{}, error) {
	if len(dnis) == 0 {
		return map[string]struct{}{}, nil
	}
	const query = `SELECT dni FROM docentes WHERE dni = ANY($1)`
	var found []string
	if err := r.db.SelectContext(ctx, &found, query, pq.Array(dnis)); err != nil {
		return nil, fmt.Errorf("check docentes: %w", err)
	}
	set := make(map[string]struct{}, len(found))
	for _, dni := range found {
		set[dni] = struct{}{}
	}
	return set, nil
}

// Create inserts a new docente record.
func (r *DocenteRepository) Create(ctx context.Context, docente *models.Docente) error {
	now := time.Now().UTC()
	docente.CreatedAt = now
	docente.UpdatedAt = now
	const query = `INSERT INTO docentes (dni, nombre, created_at, updated_at)
		VALUES (:dni, :nombre, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, docente); err != nil {
		return fmt.Errorf("create docente: %w", err)
	}
	return nil
}

// UpdateNombre renames an existing docente.
func (r *DocenteRepository) UpdateNombre(ctx context.Context, dni, nombre string) error {
	const query = `UPDATE docentes SET nombre = $2, updated_at = $3 WHERE dni = $1`
	if _, err := r.db.ExecContext(ctx, query, dni, nombre, time.Now().UTC()); err != nil {
		return fmt.Errorf("update docente: %w", err)
	}
	return nil
}

// Delete removes a docente and its vinculos in one transaction. Returns
// sql.ErrNoRows when the docente does not exist.
func (r *DocenteRepository) Delete(ctx context.Context, dni string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete docente: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM docentes WHERE dni = $1`, dni)
	if err != nil {
		return fmt.Errorf("delete docente: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete docente: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vinculos WHERE docente_dni = $1`, dni); err != nil {
		return fmt.Errorf("cascade vinculos: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete docente: %w", err)
	}
	return nil
}
