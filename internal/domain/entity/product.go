package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de alerta cuando el producto no define uno.
const DefaultLowStockThreshold int64 = 10

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock se maneja por bodega en InventoryRecord; cada cambio de cantidad
// queda registrado en InventoryChangeEvent.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string // código único por empresa
	Name              string
	Price             decimal.Decimal // precio de venta, >= 0
	IsBundle          bool
	LowStockThreshold int64   // >= 0; las alertas disparan con quantity < threshold (estricto)
	SupplierID        *string // nil = sin proveedor asignado
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
