package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las rutas de
// mutación de stock: o se actualiza la cantidad y se escribe su evento en el
// ledger, o no ocurre ninguna de las dos cosas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}

// LowStockReportGenerator genera la representación en PDF del reporte de
// alertas de stock bajo. La implementación vive en infrastructure/pdf.
type LowStockReportGenerator interface {
	GenerateLowStockReport(
		ctx context.Context,
		company *entity.Company,
		generatedAt time.Time,
		alerts []dto.LowStockAlertDTO,
	) ([]byte, error)
}
