package models

import "time"

// Acuse is an immutable consent record. IPHash carries a digest of the
// requester's network origin; the raw address is never stored.
type Acuse struct {
	ID             string    `db:"id" json:"_id"`
	DocenteDNI     string    `db:"docente_dni" json:"docenteDni"`
	ResolucionID   string    `db:"resolucion_id" json:"resolucionId"`
	NombreCompleto string    `db:"nombre_completo" json:"nombreCompleto"`
	Email          string    `db:"email" json:"email"`
	Acepto         bool      `db:"acepto" json:"acepto"`
	TextoLegal     string    `db:"texto_legal" json:"textoLegal"`
	IPHash         string    `db:"ip_hash" json:"-"`
	UserAgent      string    `db:"user_agent" json:"-"`
	FirmadoEn      time.Time `db:"firmado_en" json:"firmadoEn"`
}
