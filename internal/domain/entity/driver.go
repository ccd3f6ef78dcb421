package entity

import "time"

// Driver representa un conductor para atribución opcional de transferencias.
type Driver struct {
	ID        string
	Name      string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
