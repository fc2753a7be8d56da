package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	CompanyID    string `json:"company_id" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
