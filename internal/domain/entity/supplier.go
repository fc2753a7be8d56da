package entity

import "time"

// Supplier representa un proveedor de productos de una empresa.
// ContactEmail es el contacto que se expone en las alertas de stock bajo.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
