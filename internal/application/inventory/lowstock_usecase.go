package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	domaininv "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// LowStockAlertUseCase produce el reporte de alertas de stock bajo de una
// empresa: filas (producto, bodega) bajo umbral, restringidas a productos con
// ventas recientes, cada una con contacto de proveedor y proyección de
// agotamiento.
//
// Pipeline de solo lectura en cuatro etapas nombradas, cada una testeable por
// separado: fetchRecentActivity → joinCandidates → filterLowStock →
// enrichWithEstimate. Sin estado entre invocaciones; el conjunto de actividad
// reciente se recalcula en cada llamada.
type LowStockAlertUseCase struct {
	historyRepo   repository.HistoryRepository
	inventoryRepo repository.InventoryRepository
	windowDays    int
	now           func() time.Time
}

// NewLowStockAlertUseCase construye el caso de uso. El reloj se inyecta para
// que los tests de borde de ventana sean deterministas; en producción pasar
// time.Now.
func NewLowStockAlertUseCase(
	historyRepo repository.HistoryRepository,
	inventoryRepo repository.InventoryRepository,
	windowDays int,
	now func() time.Time,
) *LowStockAlertUseCase {
	if windowDays <= 0 {
		windowDays = domaininv.DefaultWindowDays
	}
	if now == nil {
		now = time.Now
	}
	return &LowStockAlertUseCase{
		historyRepo:   historyRepo,
		inventoryRepo: inventoryRepo,
		windowDays:    windowDays,
		now:           now,
	}
}

// GetLowStockAlerts calcula el reporte completo para una empresa.
// Un companyID malformado falla con domain.ErrInvalidInput antes de tocar la
// BD. Cualquier fallo de acceso a datos aborta la petición completa: un
// reporte parcial podría ocultar quiebres reales de stock.
func (uc *LowStockAlertUseCase) GetLowStockAlerts(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	since := now.AddDate(0, 0, -uc.windowDays)

	recent, err := uc.fetchRecentActivity(ctx, since)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.joinCandidates(ctx, companyID, recent)
	if err != nil {
		return nil, err
	}

	lowStock := filterLowStock(candidates)

	alerts, err := uc.enrichWithEstimate(ctx, lowStock, since, now)
	if err != nil {
		return nil, err
	}

	// Orden estable: primero lo más urgente, desempate por SKU y bodega.
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.DaysUntilStockout != b.DaysUntilStockout {
			return a.DaysUntilStockout < b.DaysUntilStockout
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.WarehouseName < b.WarehouseName
	})

	return &dto.LowStockAlertsResponse{
		Alerts:      alerts,
		TotalAlerts: len(alerts),
	}, nil
}

// fetchRecentActivity arma el conjunto de productos con al menos una venta
// desde since (borde inclusivo).
func (uc *LowStockAlertUseCase) fetchRecentActivity(ctx context.Context, since time.Time) (map[string]struct{}, error) {
	ids, err := uc.historyRepo.FindRecentSaleProductIDs(ctx, since)
	if err != nil {
		return nil, err
	}
	recent := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		recent[id] = struct{}{}
	}
	return recent, nil
}

// joinCandidates resuelve inventario ⋈ producto ⋈ bodega ⟕ proveedor para la
// empresa y descarta los productos sin actividad reciente.
func (uc *LowStockAlertUseCase) joinCandidates(ctx context.Context, companyID string, recent map[string]struct{}) ([]repository.AlertCandidate, error) {
	rows, err := uc.inventoryRepo.JoinWithCatalog(ctx, companyID)
	if err != nil {
		return nil, err
	}
	candidates := rows[:0]
	for _, row := range rows {
		if _, ok := recent[row.ProductID]; ok {
			candidates = append(candidates, row)
		}
	}
	return candidates, nil
}

// filterLowStock conserva solo las filas con cantidad estrictamente menor al
// umbral del producto (cantidad igual al umbral NO es stock bajo).
func filterLowStock(candidates []repository.AlertCandidate) []repository.AlertCandidate {
	low := candidates[:0]
	for _, c := range candidates {
		if c.Quantity < c.Threshold {
			low = append(low, c)
		}
	}
	return low
}

// enrichWithEstimate adjunta a cada fila su proyección de agotamiento a partir
// del historial de ventas del par (producto, bodega).
func (uc *LowStockAlertUseCase) enrichWithEstimate(
	ctx context.Context,
	rows []repository.AlertCandidate,
	since, now time.Time,
) ([]dto.LowStockAlertDTO, error) {
	alerts := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, row := range rows {
		sales, err := uc.historyRepo.FindSaleEvents(ctx, row.ProductID, row.WarehouseID, since)
		if err != nil {
			return nil, err
		}

		alert := dto.LowStockAlertDTO{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       row.WarehouseID,
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.Quantity,
			Threshold:         row.Threshold,
			DaysUntilStockout: domaininv.DaysUntilStockout(sales, row.Quantity, now, uc.windowDays),
		}
		if row.SupplierID != nil {
			alert.Supplier = &dto.AlertSupplierDTO{
				ID:           *row.SupplierID,
				Name:         deref(row.SupplierName),
				ContactEmail: deref(row.SupplierEmail),
			}
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
