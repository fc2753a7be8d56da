package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación del ledger de cambios de inventario sobre
// PostgreSQL (usable con pool o tx). Append-only: solo inserta.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create inserta un evento de cambio en el ledger.
func (r *HistoryRepo) Create(event *entity.InventoryChangeEvent) error {
	query := `
		INSERT INTO inventory_history (id, product_id, warehouse_id, change, reason, previous_quantity, new_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.ProductID, event.WarehouseID, event.Change, event.Reason,
		event.PreviousQuantity, event.NewQuantity, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history event: %w", err)
	}
	return nil
}

// FindRecentSaleProductIDs devuelve los product IDs distintos con al menos una
// venta desde since (borde inclusivo: created_at >= since).
func (r *HistoryRepo) FindRecentSaleProductIDs(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT product_id
		FROM inventory_history
		WHERE reason = 'sale' AND created_at >= $1`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("find recent sale product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindSaleEvents devuelve los eventos de venta del par producto+bodega desde
// since, del más antiguo al más reciente.
func (r *HistoryRepo) FindSaleEvents(ctx context.Context, productID, warehouseID string, since time.Time) ([]entity.InventoryChangeEvent, error) {
	query := `
		SELECT id, product_id, warehouse_id, change, reason, previous_quantity, new_quantity, created_at
		FROM inventory_history
		WHERE product_id = $1 AND warehouse_id = $2
		  AND reason = 'sale' AND created_at >= $3
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, productID, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("find sale events: %w", err)
	}
	defer rows.Close()

	return scanChangeEvents(rows)
}

// ListByProductAndWarehouse lista el historial completo del par, del más
// reciente al más antiguo, con paginación.
func (r *HistoryRepo) ListByProductAndWarehouse(ctx context.Context, productID, warehouseID string, limit, offset int) ([]entity.InventoryChangeEvent, error) {
	query := `
		SELECT id, product_id, warehouse_id, change, reason, previous_quantity, new_quantity, created_at
		FROM inventory_history
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	return scanChangeEvents(rows)
}

func scanChangeEvents(rows pgx.Rows) ([]entity.InventoryChangeEvent, error) {
	var events []entity.InventoryChangeEvent
	for rows.Next() {
		var ev entity.InventoryChangeEvent
		if err := rows.Scan(&ev.ID, &ev.ProductID, &ev.WarehouseID, &ev.Change, &ev.Reason,
			&ev.PreviousQuantity, &ev.NewQuantity, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
