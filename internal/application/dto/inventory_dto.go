package dto

import "time"

// MovementRequest body para registrar una venta o reposición.
type MovementRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int64  `json:"quantity" validate:"required,min=1"`
}

// MovementResponse confirmación con la cantidad resultante.
type MovementResponse struct {
	Message     string `json:"message"`
	NewQuantity int64  `json:"new_quantity"`
}

// ChangeEventResponse un evento del ledger de inventario.
type ChangeEventResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	WarehouseID      string    `json:"warehouse_id"`
	Change           int64     `json:"change"`
	Reason           string    `json:"reason"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	CreatedAt        time.Time `json:"created_at"`
}

// ChangeHistoryResponse historial de cambios de un par producto+bodega.
type ChangeHistoryResponse struct {
	Items []ChangeEventResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
