package entity

import "time"

// Location representa una sede u oficina entre las que se traslada stock.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
