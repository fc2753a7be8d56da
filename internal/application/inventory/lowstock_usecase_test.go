package inventory_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio (cuentan llamadas para verificar fail-fast)
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "11111111-1111-1111-1111-111111111111"
	companyB = "22222222-2222-2222-2222-222222222222"
)

var alertNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type fakeHistoryRepo struct {
	recentIDs   []string
	recentErr   error
	sales       map[string][]entity.InventoryChangeEvent // productID|warehouseID
	salesErr    error
	recentCalls int
	salesCalls  int
}

func (f *fakeHistoryRepo) Create(*entity.InventoryChangeEvent) error { return nil }

func (f *fakeHistoryRepo) FindRecentSaleProductIDs(_ context.Context, _ time.Time) ([]string, error) {
	f.recentCalls++
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.recentIDs, nil
}

func (f *fakeHistoryRepo) FindSaleEvents(_ context.Context, productID, warehouseID string, _ time.Time) ([]entity.InventoryChangeEvent, error) {
	f.salesCalls++
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales[productID+"|"+warehouseID], nil
}

func (f *fakeHistoryRepo) ListByProductAndWarehouse(_ context.Context, _, _ string, _, _ int) ([]entity.InventoryChangeEvent, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	// candidatos por empresa: emula el scoping por company_id del join SQL
	byCompany map[string][]repository.AlertCandidate
	joinErr   error
	joinCalls int
}

func (f *fakeInventoryRepo) Get(_, _ string) (*entity.InventoryRecord, error)          { return nil, nil }
func (f *fakeInventoryRepo) GetForUpdate(_, _ string) (*entity.InventoryRecord, error) { return nil, nil }
func (f *fakeInventoryRepo) Upsert(*entity.InventoryRecord) error                      { return nil }

func (f *fakeInventoryRepo) JoinWithCatalog(_ context.Context, companyID string) ([]repository.AlertCandidate, error) {
	f.joinCalls++
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return f.byCompany[companyID], nil
}

func strptr(s string) *string { return &s }

func candidate(productID, sku, warehouse string, qty, threshold int64) repository.AlertCandidate {
	return repository.AlertCandidate{
		ProductID:     productID,
		ProductName:   "Producto " + sku,
		SKU:           sku,
		Threshold:     threshold,
		WarehouseID:   "wh-" + warehouse,
		WarehouseName: warehouse,
		Quantity:      qty,
	}
}

func newAlertUC(h *fakeHistoryRepo, inv *fakeInventoryRepo) *appinv.LowStockAlertUseCase {
	return appinv.NewLowStockAlertUseCase(h, inv, 30, func() time.Time { return alertNow })
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y fail-fast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_CompanyIDInvalido_SinConsultas(t *testing.T) {
	h := &fakeHistoryRepo{}
	inv := &fakeInventoryRepo{}
	uc := newAlertUC(h, inv)

	_, err := uc.GetLowStockAlerts(context.Background(), "no-es-un-uuid")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, h.recentCalls, "un ID malformado no debe tocar el historial")
	assert.Zero(t, inv.joinCalls, "un ID malformado no debe tocar el inventario")
}

func TestGetLowStockAlerts_FalloEnJoin_SinResultadoParcial(t *testing.T) {
	h := &fakeHistoryRepo{recentIDs: []string{"p-1"}}
	inv := &fakeInventoryRepo{joinErr: errors.New("conexión perdida")}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)

	assert.Error(t, err)
	assert.Nil(t, out, "ante un fallo de acceso a datos no se devuelve reporte parcial")
}

func TestGetLowStockAlerts_FalloEnHistorialDeVentas_AbortaTodo(t *testing.T) {
	h := &fakeHistoryRepo{
		recentIDs: []string{"p-1"},
		salesErr:  errors.New("timeout"),
	}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {candidate("p-1", "SKU-1", "Central", 3, 10)},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)

	assert.Error(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros del pipeline
// ──────────────────────────────────────────────────────────────────────────────

// Borde del umbral: cantidad igual al umbral NO es stock bajo; una unidad
// menos sí lo es.
func TestGetLowStockAlerts_BordeDelUmbral(t *testing.T) {
	h := &fakeHistoryRepo{recentIDs: []string{"p-igual", "p-debajo"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {
			candidate("p-igual", "SKU-EQ", "Central", 10, 10),
			candidate("p-debajo", "SKU-LT", "Central", 9, 10),
		},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)

	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, "SKU-LT", out.Alerts[0].SKU)
	assert.Equal(t, int64(9), out.Alerts[0].CurrentStock)
	assert.Equal(t, int64(10), out.Alerts[0].Threshold)
}

// Un producto sin ventas en la ventana nunca aparece, aunque esté bajo umbral.
func TestGetLowStockAlerts_SinActividadReciente_Excluido(t *testing.T) {
	h := &fakeHistoryRepo{recentIDs: []string{"p-activo"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {
			candidate("p-activo", "SKU-A", "Central", 2, 10),
			candidate("p-dormido", "SKU-D", "Central", 1, 10),
		},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)

	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, "SKU-A", out.Alerts[0].SKU)
}

// Aislamiento por empresa: las alertas de A nunca incluyen filas de B aunque
// los SKUs colisionen entre empresas.
func TestGetLowStockAlerts_AislamientoPorEmpresa(t *testing.T) {
	h := &fakeHistoryRepo{recentIDs: []string{"pa-1", "pb-1"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {candidate("pa-1", "SKU-X", "Norte", 4, 10)},
		companyB: {candidate("pb-1", "SKU-X", "Sur", 1, 10)},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)

	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, "pa-1", out.Alerts[0].ProductID)
	assert.Equal(t, "Norte", out.Alerts[0].WarehouseName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enriquecimiento: proveedor y proyección
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_ProveedorNulo_SerializaNull(t *testing.T) {
	h := &fakeHistoryRepo{recentIDs: []string{"p-1"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {candidate("p-1", "SKU-1", "Central", 3, 10)},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Nil(t, out.Alerts[0].Supplier)

	raw, err := json.Marshal(out.Alerts[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"supplier":null`,
		"un producto sin proveedor debe exponer supplier: null en el wire")
}

func TestGetLowStockAlerts_ProveedorPresente_DatosExactos(t *testing.T) {
	cand := candidate("p-1", "SKU-1", "Central", 3, 10)
	cand.SupplierID = strptr("sup-9")
	cand.SupplierName = strptr("Distribuidora Andina")
	cand.SupplierEmail = strptr("compras@andina.co")

	h := &fakeHistoryRepo{recentIDs: []string{"p-1"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {cand},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)

	sup := out.Alerts[0].Supplier
	require.NotNil(t, sup)
	assert.Equal(t, "sup-9", sup.ID)
	assert.Equal(t, "Distribuidora Andina", sup.Name)
	assert.Equal(t, "compras@andina.co", sup.ContactEmail)
}

func TestGetLowStockAlerts_ProyeccionDesdeHistorial(t *testing.T) {
	// 30 unidades vendidas en 10 días, stock 6 → promedio 3/día → 2 días.
	sales := []entity.InventoryChangeEvent{
		{Change: -30, Reason: entity.ReasonSale, CreatedAt: alertNow.AddDate(0, 0, -10)},
	}
	h := &fakeHistoryRepo{
		recentIDs: []string{"p-1"},
		sales:     map[string][]entity.InventoryChangeEvent{"p-1|wh-Central": sales},
	}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {candidate("p-1", "SKU-1", "Central", 6, 10)},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, 2, out.Alerts[0].DaysUntilStockout)
}

func TestGetLowStockAlerts_SinVentasPorBodega_ProyeccionConservadora(t *testing.T) {
	// El producto tiene actividad reciente (en otra bodega), pero en esta
	// bodega no hay ventas: rige la tasa de baja rotación 0.1/día.
	h := &fakeHistoryRepo{recentIDs: []string{"p-1"}}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {candidate("p-1", "SKU-1", "Central", 5, 10)},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, 50, out.Alerts[0].DaysUntilStockout)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden del reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_OrdenEstablePorUrgencia(t *testing.T) {
	h := &fakeHistoryRepo{
		recentIDs: []string{"p-lento", "p-urgente"},
		sales: map[string][]entity.InventoryChangeEvent{
			// urgente: 20 vendidas en 5 días, stock 4 → 1 día
			"p-urgente|wh-Central": {{Change: -20, Reason: entity.ReasonSale, CreatedAt: alertNow.AddDate(0, 0, -5)}},
			// lento: 5 vendidas en 25 días, stock 8 → 40 días
			"p-lento|wh-Central": {{Change: -5, Reason: entity.ReasonSale, CreatedAt: alertNow.AddDate(0, 0, -25)}},
		},
	}
	inv := &fakeInventoryRepo{byCompany: map[string][]repository.AlertCandidate{
		companyA: {
			candidate("p-lento", "SKU-L", "Central", 8, 10),
			candidate("p-urgente", "SKU-U", "Central", 4, 10),
		},
	}}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 2, out.TotalAlerts)

	assert.Equal(t, "SKU-U", out.Alerts[0].SKU, "lo más urgente va primero")
	assert.Equal(t, "SKU-L", out.Alerts[1].SKU)
}

func TestGetLowStockAlerts_SinCandidatos_ReporteVacio(t *testing.T) {
	h := &fakeHistoryRepo{}
	inv := &fakeInventoryRepo{}
	uc := newAlertUC(h, inv)

	out, err := uc.GetLowStockAlerts(context.Background(), companyA)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalAlerts)
	assert.Empty(t, out.Alerts)
}
