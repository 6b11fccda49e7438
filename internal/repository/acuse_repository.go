package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/davideme94/sad-proyecto/internal/models"
)

const acuseColumns = `id, docente_dni, resolucion_id, nombre_completo, email, acepto, texto_legal, ip_hash, user_agent, firmado_en`

// AcuseRepository manages the append-only acknowledgment ledger. There is no
// update or delete: once signed, a record stays.
type AcuseRepository struct {
	db *sqlx.DB
}

// NewAcuseRepository constructs an AcuseRepository.
func NewAcuseRepository(db *sqlx.DB) *AcuseRepository {
	return &AcuseRepository{db: db}
}

// Create appends an acknowledgment record.
func (r *AcuseRepository) Create(ctx context.Context, acuse *models.Acuse) error {
	if acuse.ID == "" {
		acuse.ID = uuid.NewString()
	}
	const query = `INSERT INTO acuses (id, docente_dni, resolucion_id, nombre_completo, email, acepto, texto_legal, ip_hash, user_agent, firmado_en)
		VALUES (:id, :docente_dni, :resolucion_id, :nombre_completo, :email, :acepto, :texto_legal, :ip_hash, :user_agent, :firmado_en)`
	if _, err := r.db.NamedExecContext(ctx, query, acuse); err != nil {
		return fmt.Errorf("create acuse: %w", err)
	}
	return nil
}

// ListAll returns the full ledger, newest signature first.
func (r *AcuseRepository) ListAll(ctx context.Context) ([]models.Acuse, error) {
	query := fmt.Sprintf(`SELECT %s FROM acuses ORDER BY firmado_en DESC`, acuseColumns)
	acuses := []models.Acuse{}
	if err := r.db.SelectContext(ctx, &acuses, query); err != nil {
		return nil, fmt.Errorf("list acuses: %w", err)
	}
	return acuses, nil
}

// ListByResolucion returns the ledger entries for one resolucion, newest first.
func (r *AcuseRepository) ListByResolucion(ctx context.Context, resolucionID string) ([]models.Acuse, error) {
	query := fmt.Sprintf(`SELECT %s FROM acuses WHERE resolucion_id = $1 ORDER BY firmado_en DESC`, acuseColumns)
	acuses := []models.Acuse{}
	if err := r.db.SelectContext(ctx, &acuses, query, resolucionID); err != nil {
		return nil, fmt.Errorf("list acuses by resolucion: %w", err)
	}
	return acuses, nil
}

// AcknowledgedSet returns which of the given resoluciones have at least one
// acuse by the docente. Any record suffices; the signer is irrelevant.
func (r *AcuseRepository) AcknowledgedSet(ctx context.Context, dni string, resolucionIDs []string) (map[string]struct{}, error) {
	if len(resolucionIDs) == 0 {
		return map[string]struct{}{}, nil
	}
	const query = `SELECT DISTINCT resolucion_id FROM acuses WHERE docente_dni = $1 AND resolucion_id = ANY($2)`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, dni, pq.Array(resolucionIDs)); err != nil {
		return nil, fmt.Errorf("check acuses: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
