package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SupplierUseCase aplica reglas de negocio para proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	companyRepo repository.CompanyRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, companyRepo repository.CompanyRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un proveedor verificando que la empresa exista.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if in.Name == "" || in.ContactEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.CompanyID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return entityToSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return entityToSupplierResponse(supplier), nil
}

// ListByCompany lista los proveedores de una empresa con paginación.
func (uc *SupplierUseCase) ListByCompany(companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
