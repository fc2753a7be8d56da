package entity

import "time"

// Razones de cambio de inventario.
const (
	ReasonSale         = "sale"          // venta (change negativo)
	ReasonRestock      = "restock"       // reposición (change positivo)
	ReasonInitialStock = "initial_stock" // alta inicial del producto en la bodega
)

// InventoryChangeEvent es un hecho inmutable del ledger de inventario:
// se agrega, nunca se modifica ni se borra. PreviousQuantity y NewQuantity
// encierran exactamente el cambio (NewQuantity = PreviousQuantity + Change).
// De este historial se deriva la velocidad de ventas para las alertas.
type InventoryChangeEvent struct {
	ID               string
	ProductID        string
	WarehouseID      string
	Change           int64 // con signo: negativo en ventas
	Reason           string
	PreviousQuantity int64
	NewQuantity      int64
	CreatedAt        time.Time
}
