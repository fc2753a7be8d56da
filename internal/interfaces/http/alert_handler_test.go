package http_test

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	apihttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el pipeline de alertas detrás del handler.
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "11111111-1111-1111-1111-111111111111"

var handlerNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

type stubHistoryRepo struct {
	recentIDs []string
	sales     map[string][]entity.InventoryChangeEvent // clave productID|warehouseID
}

func (s *stubHistoryRepo) Create(*entity.InventoryChangeEvent) error { return nil }

func (s *stubHistoryRepo) FindRecentSaleProductIDs(_ context.Context, _ time.Time) ([]string, error) {
	return s.recentIDs, nil
}

func (s *stubHistoryRepo) FindSaleEvents(_ context.Context, productID, warehouseID string, _ time.Time) ([]entity.InventoryChangeEvent, error) {
	return s.sales[productID+"|"+warehouseID], nil
}

func (s *stubHistoryRepo) ListByProductAndWarehouse(_ context.Context, _, _ string, _, _ int) ([]entity.InventoryChangeEvent, error) {
	return nil, nil
}

type stubInventoryRepo struct {
	candidates map[string][]repository.AlertCandidate // clave companyID
	joinCalls  int
}

func (s *stubInventoryRepo) Get(_, _ string) (*entity.InventoryRecord, error)          { return nil, nil }
func (s *stubInventoryRepo) GetForUpdate(_, _ string) (*entity.InventoryRecord, error) { return nil, nil }
func (s *stubInventoryRepo) Upsert(*entity.InventoryRecord) error                      { return nil }

func (s *stubInventoryRepo) JoinWithCatalog(_ context.Context, companyID string) ([]repository.AlertCandidate, error) {
	s.joinCalls++
	return s.candidates[companyID], nil
}

func newAlertApp(history *stubHistoryRepo, inv *stubInventoryRepo) *fiber.App {
	alerts := inventory.NewLowStockAlertUseCase(history, inv, 30, func() time.Time { return handlerNow })
	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{Alerts: alerts})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (*nethttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/companies/:companyId/alerts/low-stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStock_CompanyIDInvalido_400(t *testing.T) {
	inv := &stubInventoryRepo{}
	app := newAlertApp(&stubHistoryRepo{}, inv)

	resp, body := doRequest(t, app, "/api/companies/no-es-uuid/alerts/low-stock")

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Zero(t, inv.joinCalls, "un id malformado no debe tocar el almacén")
}

func TestGetLowStock_ReporteConAlertas_200(t *testing.T) {
	supplierID := "22222222-2222-2222-2222-222222222222"
	supplierName := "Distribuidora Norte"
	supplierEmail := "compras@norte.co"

	history := &stubHistoryRepo{
		recentIDs: []string{"p-1"},
		sales: map[string][]entity.InventoryChangeEvent{
			"p-1|w-1": {
				{Change: -30, Reason: entity.ReasonSale, CreatedAt: handlerNow.AddDate(0, 0, -10)},
			},
		},
	}
	inv := &stubInventoryRepo{
		candidates: map[string][]repository.AlertCandidate{
			testCompanyID: {
				{
					ProductID: "p-1", ProductName: "Café molido", SKU: "CAF-001",
					Threshold: 10, WarehouseID: "w-1", WarehouseName: "Central",
					Quantity:   6,
					SupplierID: &supplierID, SupplierName: &supplierName, SupplierEmail: &supplierEmail,
				},
			},
		},
	}
	app := newAlertApp(history, inv)

	resp, body := doRequest(t, app, "/api/companies/"+testCompanyID+"/alerts/low-stock")

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var out dto.LowStockAlertsResponse
	require.NoError(t, json.Unmarshal(body, &out))

	assert.Equal(t, 1, out.TotalAlerts)
	require.Len(t, out.Alerts, 1)
	alert := out.Alerts[0]
	assert.Equal(t, "CAF-001", alert.SKU)
	assert.Equal(t, int64(6), alert.CurrentStock)
	assert.Equal(t, int64(10), alert.Threshold)
	assert.Equal(t, 2, alert.DaysUntilStockout, "30 vendidos en 10 días → 3/día; 6/3 = 2")
	require.NotNil(t, alert.Supplier)
	assert.Equal(t, supplierEmail, alert.Supplier.ContactEmail)
}

func TestGetLowStock_SinCandidatos_ReporteVacio(t *testing.T) {
	app := newAlertApp(&stubHistoryRepo{}, &stubInventoryRepo{})

	resp, body := doRequest(t, app, "/api/companies/"+testCompanyID+"/alerts/low-stock")

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var out dto.LowStockAlertsResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Zero(t, out.TotalAlerts)
	assert.NotNil(t, out.Alerts, "alerts debe serializar como [] y no como null")
	assert.Empty(t, out.Alerts)
}
