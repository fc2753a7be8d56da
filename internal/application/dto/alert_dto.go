package dto

// AlertSupplierDTO contacto de proveedor dentro de una alerta.
type AlertSupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO una fila (producto, bodega) bajo umbral con su proyección.
// Supplier es nil cuando el producto no tiene proveedor asignado y se
// serializa como null, tal cual lo espera el consumidor.
type LowStockAlertDTO struct {
	ProductID         string            `json:"product_id"`
	ProductName       string            `json:"product_name"`
	SKU               string            `json:"sku"`
	WarehouseID       string            `json:"warehouse_id"`
	WarehouseName     string            `json:"warehouse_name"`
	CurrentStock      int64             `json:"current_stock"`
	Threshold         int64             `json:"threshold"`
	Supplier          *AlertSupplierDTO `json:"supplier"`
	DaysUntilStockout int               `json:"days_until_stockout"`
}

// LowStockAlertsResponse reporte completo de alertas de stock bajo.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
