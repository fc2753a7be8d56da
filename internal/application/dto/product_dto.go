package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto con su stock inicial.
// El producto y su registro de inventario nacen juntos, con un evento
// initial_stock en el ledger.
type CreateProductRequest struct {
	CompanyID         string          `json:"company_id" validate:"required,uuid"`
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Price             decimal.Decimal `json:"price"`
	IsBundle          bool            `json:"is_bundle"`
	LowStockThreshold *int64          `json:"low_stock_threshold"` // nil = 10 por defecto
	SupplierID        *string         `json:"supplier_id"`
	WarehouseID       string          `json:"warehouse_id" validate:"required,uuid"`
	InitialQuantity   int64           `json:"initial_quantity" validate:"min=0"`
}

// CreateProductResponse confirmación de alta de producto.
type CreateProductResponse struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Message   string `json:"message"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	IsBundle          bool            `json:"is_bundle"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	SupplierID        *string         `json:"supplier_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
