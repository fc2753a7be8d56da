package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// CreateProductUseCase da de alta un producto junto con su registro de
// inventario inicial y el evento initial_stock correspondiente, en una sola
// transacción: el producto nunca existe sin su fila de inventario ni sin su
// primer evento en el ledger.
type CreateProductUseCase struct {
	txRunner      TxRunner
	companyRepo   repository.CompanyRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewCreateProductUseCase construye el caso de uso.
func NewCreateProductUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
) *CreateProductUseCase {
	if now == nil {
		now = time.Now
	}
	return &CreateProductUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		now:           now,
	}
}

// Create valida referencias y unicidad de SKU por empresa, y persiste
// producto + inventario + evento inicial de forma atómica.
func (uc *CreateProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	in.SKU = strings.ToUpper(strings.TrimSpace(in.SKU))
	in.Name = strings.TrimSpace(in.Name)

	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.CompanyID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.WarehouseID); err != nil {
		return nil, domain.ErrInvalidInput
	}

	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}

	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != in.CompanyID {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.CompanyID != in.CompanyID {
			return nil, domain.ErrNotFound
		}
	}

	existing, err := uc.productRepo.GetByCompanyAndSKU(in.CompanyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         in.CompanyID,
		SKU:               in.SKU,
		Name:              in.Name,
		Price:             in.Price,
		IsBundle:          in.IsBundle,
		LowStockThreshold: threshold,
		SupplierID:        in.SupplierID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		historyRepo repository.HistoryRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if err := inventoryRepo.Upsert(&entity.InventoryRecord{
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.InitialQuantity,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		return historyRepo.Create(&entity.InventoryChangeEvent{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			WarehouseID:      in.WarehouseID,
			Change:           in.InitialQuantity,
			Reason:           entity.ReasonInitialStock,
			PreviousQuantity: 0,
			NewQuantity:      in.InitialQuantity,
			CreatedAt:        now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{
		ProductID: product.ID,
		SKU:       product.SKU,
		Message:   "producto creado",
	}, nil
}
