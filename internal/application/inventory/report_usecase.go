package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ReportUseCase exporta el reporte de alertas de stock bajo como PDF,
// reutilizando el pipeline de alertas y delegando el layout al generador.
type ReportUseCase struct {
	alerts      *LowStockAlertUseCase
	companyRepo repository.CompanyRepository
	generator   LowStockReportGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	alerts *LowStockAlertUseCase,
	companyRepo repository.CompanyRepository,
	generator LowStockReportGenerator,
	now func() time.Time,
) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{
		alerts:      alerts,
		companyRepo: companyRepo,
		generator:   generator,
		now:         now,
	}
}

// ExportLowStockReport calcula las alertas de la empresa y devuelve los bytes
// del PDF. La validación del companyID la hace el pipeline de alertas.
func (uc *ReportUseCase) ExportLowStockReport(ctx context.Context, companyID string) ([]byte, error) {
	report, err := uc.alerts.GetLowStockAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateLowStockReport(ctx, company, uc.now(), report.Alerts)
}
