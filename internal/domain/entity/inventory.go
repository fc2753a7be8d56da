package entity

import "time"

// InventoryRecord representa el stock actual de un producto en una bodega.
// Un registro por par (producto, bodega); la cantidad nunca es negativa.
type InventoryRecord struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
