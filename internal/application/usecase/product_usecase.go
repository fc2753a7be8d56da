package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ProductUseCase cubre el lado de lectura del catálogo de productos.
// El alta (producto + stock inicial) vive en inventory.CreateProductUseCase
// porque es transaccional.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return entityToProductResponse(product), nil
}

// ListByCompany lista los productos de una empresa con paginación.
func (uc *ProductUseCase) ListByCompany(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		SKU:               p.SKU,
		Name:              p.Name,
		Price:             p.Price,
		IsBundle:          p.IsBundle,
		LowStockThreshold: p.LowStockThreshold,
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
