package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// HistoryRepository define el puerto del ledger de cambios de inventario.
// El ledger es append-only: solo Create; nunca update ni delete.
type HistoryRepository interface {
	Create(event *entity.InventoryChangeEvent) error

	// FindRecentSaleProductIDs devuelve los product IDs distintos con al menos
	// una venta desde since (borde inclusivo).
	FindRecentSaleProductIDs(ctx context.Context, since time.Time) ([]string, error)

	// FindSaleEvents devuelve los eventos de venta del par (producto, bodega)
	// desde since, ascendente por fecha.
	FindSaleEvents(ctx context.Context, productID, warehouseID string, since time.Time) ([]entity.InventoryChangeEvent, error)

	// ListByProductAndWarehouse lista el historial completo (toda razón) del
	// par, del más reciente al más antiguo, con paginación.
	ListByProductAndWarehouse(ctx context.Context, productID, warehouseID string, limit, offset int) ([]entity.InventoryChangeEvent, error)
}
