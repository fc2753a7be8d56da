package repository

import "github.com/jhoicas/stockflow-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
}
