package entity

import "time"

// Category representa una categoría de artículos. Aquí solo se consulta;
// su CRUD vive fuera de este núcleo.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unit representa una unidad de medida de artículos (consulta solamente).
type Unit struct {
	ID           string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
