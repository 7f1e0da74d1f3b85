package entity

import "time"

// Team es el tenant de la aplicación. Toda entidad raíz cuelga de un equipo
// y los consecutivos de documentos son únicos dentro de él.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
