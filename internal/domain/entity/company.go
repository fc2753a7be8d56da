package entity

import "time"

// Company representa una organización/tenant del sistema. Es dueña de sus
// bodegas, proveedores y productos; el inventario nunca cruza empresas.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
