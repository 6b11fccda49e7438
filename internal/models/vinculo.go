package models

import "time"

// Vinculo associates one docente with one resolucion. The pair is unique;
// re-linking is a no-op at the store level.
type Vinculo struct {
	ResolucionID string    `db:"resolucion_id" json:"resolucionId"`
	DocenteDNI   string    `db:"docente_dni" json:"docenteDni"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
