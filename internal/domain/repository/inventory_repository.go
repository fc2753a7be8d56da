package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AlertCandidate fila cruda del join inventario ⋈ producto ⋈ bodega ⟕ proveedor,
// ya acotada a una empresa. Los campos de proveedor son nil cuando el producto
// no tiene proveedor asignado.
type AlertCandidate struct {
	ProductID     string
	ProductName   string
	SKU           string
	Threshold     int64
	WarehouseID   string
	WarehouseName string
	Quantity      int64
	SupplierID    *string
	SupplierName  *string
	SupplierEmail *string
}

// InventoryRepository define el puerto para consultar/actualizar stock por
// producto+bodega. Get y GetForUpdate devuelven (nil, nil) si el registro no existe.
type InventoryRepository interface {
	Get(productID, warehouseID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usar dentro de tx.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error

	// JoinWithCatalog devuelve todas las filas de inventario de la empresa con
	// su producto, bodega y proveedor opcional resueltos (lectura, sin filtrar
	// por umbral ni actividad: eso lo hace el pipeline de alertas por etapas).
	JoinWithCatalog(ctx context.Context, companyID string) ([]AlertCandidate, error)
}
