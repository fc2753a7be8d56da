package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// RegisterMovementUseCase registra ventas y reposiciones de forma
// transaccional: bloqueo de fila (SELECT FOR UPDATE) sobre el registro de
// inventario, actualización de cantidad y exactamente un evento en el ledger
// cuyos previous/new encierran el cambio. La cantidad nunca queda negativa.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	now func() time.Time,
) *RegisterMovementUseCase {
	if now == nil {
		now = time.Now
	}
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		now:           now,
	}
}

// MovementInput entrada para registrar una venta o reposición.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64  // unidades, > 0
	Reason      string // entity.ReasonSale | entity.ReasonRestock
}

// RegisterMovement valida producto y bodega, inicia la transacción, bloquea la
// fila de inventario y aplica el cambio con su evento. Commit si todo ok,
// Rollback si algo falla (TxRunner.Run lo garantiza).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*dto.MovementResponse, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Reason != entity.ReasonSale && input.Reason != entity.ReasonRestock {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(input.ProductID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(input.WarehouseID); err != nil {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != product.CompanyID {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	var newQuantity int64

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		historyRepo repository.HistoryRepository,
	) error {
		record, err := inventoryRepo.GetForUpdate(input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}

		previous := record.Quantity
		change := input.Quantity
		if input.Reason == entity.ReasonSale {
			if previous < input.Quantity {
				return domain.ErrInsufficientStock
			}
			change = -input.Quantity
		}

		record.Quantity = previous + change
		record.UpdatedAt = now
		if err := inventoryRepo.Upsert(record); err != nil {
			return err
		}

		newQuantity = record.Quantity
		return historyRepo.Create(&entity.InventoryChangeEvent{
			ID:               uuid.New().String(),
			ProductID:        input.ProductID,
			WarehouseID:      input.WarehouseID,
			Change:           change,
			Reason:           input.Reason,
			PreviousQuantity: previous,
			NewQuantity:      record.Quantity,
			CreatedAt:        now,
		})
	})
	if err != nil {
		return nil, err
	}

	message := "venta registrada"
	if input.Reason == entity.ReasonRestock {
		message = "reposición registrada"
	}
	return &dto.MovementResponse{Message: message, NewQuantity: newQuantity}, nil
}
