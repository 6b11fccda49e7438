package models

import (
	"regexp"
	"time"
)

// dniPattern is the national-ID shape shared by every operation that takes a DNI.
var dniPattern = regexp.MustCompile(`^[0-9]{7,9}$`)

// ValidDNI reports whether the value is a well-formed national ID.
func ValidDNI(dni string) bool {
	return dniPattern.MatchString(dni)
}

// Docente is a registered teacher, keyed by national ID.
type Docente struct {
	DNI       string    `db:"dni" json:"dni"`
	Nombre    string    `db:"nombre" json:"nombre"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Upsert verdicts reported back to the admin client.
const (
	UpsertCreated        = "created"
	UpsertUpdated        = "updated"
	UpsertAlreadyExisted = "alreadyExisted"
)
