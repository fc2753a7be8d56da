package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el registro de inventario de un producto en una bodega.
// Devuelve (nil, nil) si no existe.
func (r *InventoryRepo) Get(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE);
// usar dentro de una transacción. Devuelve (nil, nil) si no existe.
func (r *InventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza la cantidad (por producto y bodega).
func (r *InventoryRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseID, record.Quantity, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// JoinWithCatalog devuelve todas las filas de inventario de la empresa con su
// producto, bodega y proveedor opcional (LEFT JOIN). El filtrado por umbral y
// por actividad reciente lo hace el pipeline de alertas, no esta consulta.
func (r *InventoryRepo) JoinWithCatalog(ctx context.Context, companyID string) ([]repository.AlertCandidate, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.low_stock_threshold,
		       w.id, w.name,
		       i.quantity,
		       s.id, s.name, s.contact_email
		FROM inventory i
		JOIN products p   ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.company_id = $1
		ORDER BY p.sku, w.name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("join inventory with catalog: %w", err)
	}
	defer rows.Close()

	var list []repository.AlertCandidate
	for rows.Next() {
		var c repository.AlertCandidate
		if err := rows.Scan(
			&c.ProductID, &c.ProductName, &c.SKU, &c.Threshold,
			&c.WarehouseID, &c.WarehouseName,
			&c.Quantity,
			&c.SupplierID, &c.SupplierName, &c.SupplierEmail,
		); err != nil {
			return nil, fmt.Errorf("scan alert candidate: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
