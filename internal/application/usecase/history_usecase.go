package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// HistoryUseCase expone el ledger de cambios de inventario en modo lectura.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// ListByProductAndWarehouse lista los eventos de un par producto+bodega,
// del más reciente al más antiguo.
func (uc *HistoryUseCase) ListByProductAndWarehouse(ctx context.Context, productID, warehouseID string, limit, offset int) (*dto.ChangeHistoryResponse, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(warehouseID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = normalizePage(limit, offset)
	events, err := uc.repo.ListByProductAndWarehouse(ctx, productID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChangeEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, dto.ChangeEventResponse{
			ID:               ev.ID,
			ProductID:        ev.ProductID,
			WarehouseID:      ev.WarehouseID,
			Change:           ev.Change,
			Reason:           ev.Reason,
			PreviousQuantity: ev.PreviousQuantity,
			NewQuantity:      ev.NewQuantity,
			CreatedAt:        ev.CreatedAt,
		})
	}
	return &dto.ChangeHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
