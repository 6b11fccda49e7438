package models

import "time"

// Nivel is the education level a resolution may be categorised under.
type Nivel string

const (
	NivelInicial    Nivel = "INICIAL"
	NivelPrimaria   Nivel = "PRIMARIA"
	NivelSecundaria Nivel = "SECUNDARIA"
	NivelSuperior   Nivel = "SUPERIOR"
	NivelAdultos    Nivel = "ADULTOS"
)

// ValidNivel reports whether the value belongs to the fixed level set.
func ValidNivel(n string) bool {
	switch Nivel(n) {
	case NivelInicial, NivelPrimaria, NivelSecundaria, NivelSuperior, NivelAdultos:
		return true
	}
	return false
}

// Resolucion is a published document reference. DocenteDNI is the optional
// direct association; broader visibility goes through vinculos.
type Resolucion struct {
	ID         string    `db:"id" json:"_id"`
	DocenteDNI *string   `db:"docente_dni" json:"docenteDni,omitempty"`
	Titulo     string    `db:"titulo" json:"titulo"`
	DriveURL   string    `db:"drive_url" json:"driveUrl"`
	Expediente *string   `db:"expediente" json:"expediente,omitempty"`
	Nivel      *string   `db:"nivel" json:"nivel,omitempty"`
	CreadoPor  string    `db:"creado_por" json:"creadoPor,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// ResolucionConAcuse decorates a resolution with the acknowledgment flag the
// public lookup reports.
type ResolucionConAcuse struct {
	Resolucion
	YaAcuso bool `json:"yaAcuso"`
}
