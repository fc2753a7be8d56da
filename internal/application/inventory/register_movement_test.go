package inventory_test

import (
	"context"
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
// Fakes transaccionales: el TxRunner pasa repos en memoria y descarta los
// cambios si fn devuelve error (emula el Rollback).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "33333333-3333-3333-3333-333333333333"
	testWarehouseID = "44444444-4444-4444-4444-444444444444"
)

var movementNow = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

type memInventoryRepo struct {
	record *entity.InventoryRecord
}

func (m *memInventoryRepo) Get(_, _ string) (*entity.InventoryRecord, error) {
	return m.record, nil
}

func (m *memInventoryRepo) GetForUpdate(_, _ string) (*entity.InventoryRecord, error) {
	if m.record == nil {
		return nil, nil
	}
	cp := *m.record
	return &cp, nil
}

func (m *memInventoryRepo) Upsert(record *entity.InventoryRecord) error {
	cp := *record
	m.record = &cp
	return nil
}

func (m *memInventoryRepo) JoinWithCatalog(_ context.Context, _ string) ([]repository.AlertCandidate, error) {
	return nil, nil
}

type memHistoryRepo struct {
	events []entity.InventoryChangeEvent
}

func (m *memHistoryRepo) Create(ev *entity.InventoryChangeEvent) error {
	m.events = append(m.events, *ev)
	return nil
}

func (m *memHistoryRepo) FindRecentSaleProductIDs(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

func (m *memHistoryRepo) FindSaleEvents(_ context.Context, _, _ string, _ time.Time) ([]entity.InventoryChangeEvent, error) {
	return nil, nil
}

func (m *memHistoryRepo) ListByProductAndWarehouse(_ context.Context, _, _ string, _, _ int) ([]entity.InventoryChangeEvent, error) {
	return nil, nil
}

type stubProductRepo struct {
	product *entity.Product
}

func (s *stubProductRepo) Create(*entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(string) (*entity.Product, error) {
	return s.product, nil
}
func (s *stubProductRepo) GetByCompanyAndSKU(_, _ string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) ListByCompany(_ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type stubWarehouseRepo struct {
	warehouse *entity.Warehouse
}

func (s *stubWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (s *stubWarehouseRepo) GetByID(string) (*entity.Warehouse, error) {
	return s.warehouse, nil
}
func (s *stubWarehouseRepo) ListByCompany(_ string, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeTxRunner struct {
	products  repository.ProductRepository
	inventory *memInventoryRepo
	history   *memHistoryRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	// Snapshot para emular Rollback: si fn falla, se restaura el estado previo.
	prevRecord := f.inventory.record
	prevEvents := len(f.history.events)
	if err := fn(f.products, f.inventory, f.history); err != nil {
		f.inventory.record = prevRecord
		f.history.events = f.history.events[:prevEvents]
		return err
	}
	return nil
}

type movementFixture struct {
	uc        *appinv.RegisterMovementUseCase
	inventory *memInventoryRepo
	history   *memHistoryRepo
}

func newMovementFixture(initialQty int64, withRecord bool) *movementFixture {
	product := &entity.Product{ID: testProductID, CompanyID: companyA, SKU: "SKU-1"}
	warehouse := &entity.Warehouse{ID: testWarehouseID, CompanyID: companyA, Name: "Central"}

	inv := &memInventoryRepo{}
	if withRecord {
		inv.record = &entity.InventoryRecord{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    initialQty,
		}
	}
	hist := &memHistoryRepo{}
	products := &stubProductRepo{product: product}

	uc := appinv.NewRegisterMovementUseCase(
		&fakeTxRunner{products: products, inventory: inv, history: hist},
		products,
		&stubWarehouseRepo{warehouse: warehouse},
		func() time.Time { return movementNow },
	)
	return &movementFixture{uc: uc, inventory: inv, history: hist}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Venta_DescuentaYEncierraElCambio(t *testing.T) {
	fx := newMovementFixture(20, true)

	out, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    7,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(13), out.NewQuantity)
	assert.Equal(t, int64(13), fx.inventory.record.Quantity)

	require.Len(t, fx.history.events, 1, "una venta produce exactamente un evento")
	ev := fx.history.events[0]
	assert.Equal(t, entity.ReasonSale, ev.Reason)
	assert.Equal(t, int64(-7), ev.Change)
	assert.Equal(t, int64(20), ev.PreviousQuantity)
	assert.Equal(t, int64(13), ev.NewQuantity)
	assert.Equal(t, ev.PreviousQuantity+ev.Change, ev.NewQuantity,
		"previous y new deben encerrar exactamente el cambio")
}

func TestRegisterMovement_VentaSinStock_Conflicto(t *testing.T) {
	fx := newMovementFixture(3, true)

	_, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    5,
		Reason:      entity.ReasonSale,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), fx.inventory.record.Quantity, "la cantidad no debe cambiar")
	assert.Empty(t, fx.history.events, "un movimiento rechazado no deja rastro en el ledger")
}

func TestRegisterMovement_VentaExacta_DejaCero(t *testing.T) {
	fx := newMovementFixture(5, true)

	out, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    5,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.NewQuantity, "vender todo el stock es válido; nunca queda negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Reposicion_SumaYRegistra(t *testing.T) {
	fx := newMovementFixture(4, true)

	out, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    16,
		Reason:      entity.ReasonRestock,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), out.NewQuantity)
	require.Len(t, fx.history.events, 1)
	ev := fx.history.events[0]
	assert.Equal(t, entity.ReasonRestock, ev.Reason)
	assert.Equal(t, int64(16), ev.Change)
	assert.Equal(t, int64(4), ev.PreviousQuantity)
	assert.Equal(t, int64(20), ev.NewQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_CantidadNoPositiva_Invalida(t *testing.T) {
	fx := newMovementFixture(10, true)

	for _, qty := range []int64{0, -3} {
		_, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    qty,
			Reason:      entity.ReasonSale,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity=%d", qty)
	}
}

func TestRegisterMovement_RazonDesconocida_Invalida(t *testing.T) {
	fx := newMovementFixture(10, true)

	_, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    1,
		Reason:      entity.ReasonInitialStock, // solo sale/restock por esta vía
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_SinRegistroDeInventario_NoEncontrado(t *testing.T) {
	fx := newMovementFixture(0, false)

	_, err := fx.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    1,
		Reason:      entity.ReasonSale,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
