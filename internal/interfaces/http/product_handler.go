package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para el recurso Product.
// El alta delega en el caso de uso transaccional (producto + stock inicial).
type ProductHandler struct {
	create *inventory.CreateProductUseCase
	uc     *usecase.ProductUseCase
}

// NewProductHandler construye el handler inyectando los casos de uso.
func NewProductHandler(create *inventory.CreateProductUseCase, uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{create: create, uc: uc}
}

// Create godoc
// @Summary      Crear producto con stock inicial
// @Description  Da de alta el producto, su registro de inventario en la bodega
//
//	indicada y el evento initial_stock del ledger, de forma atómica.
//
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.create.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Listar productos de una empresa
// @Tags         products
// @Produce      json
// @Param        company_id  query  string  true   "ID de la empresa"
// @Param        limit       query  int     false  "Límite"   default(50)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) ListByCompany(c *fiber.Ctx) error {
	out, err := h.uc.ListByCompany(c.Query("company_id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
