package models

import "time"

// Audit actions recorded for administrative mutations.
const (
	AuditActionLogin  = "LOGIN"
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog records an administrative action for later review.
type AuditLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"userId,omitempty"`
	Action    string    `db:"action" json:"action"`
	Resource  string    `db:"resource" json:"resource"`
	Detail    []byte    `db:"detail" json:"detail,omitempty"`
	IPHash    string    `db:"ip_hash" json:"-"`
	UserAgent string    `db:"user_agent" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
