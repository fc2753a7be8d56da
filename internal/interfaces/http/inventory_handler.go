package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario
// (ventas, reposiciones) y su historial.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	history   *usecase.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, history *usecase.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, history: history}
}

// Sell godoc
// @Summary      Registrar venta
// @Description  Descuenta stock del producto en la bodega indicada y escribe el
//
//	evento de venta en el ledger, de forma atómica. Falla con 409 si
//	el stock es insuficiente.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        productId  path  string               true  "ID del producto"
// @Param        body       body  dto.MovementRequest  true  "warehouse_id y quantity"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	return h.registerMovement(c, entity.ReasonSale)
}

// Restock godoc
// @Summary      Registrar reposición
// @Description  Suma stock del producto en la bodega indicada y escribe el
//
//	evento de reposición en el ledger, de forma atómica.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        productId  path  string               true  "ID del producto"
// @Param        body       body  dto.MovementRequest  true  "warehouse_id y quantity"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.registerMovement(c, entity.ReasonRestock)
}

func (h *InventoryHandler) registerMovement(c *fiber.Ctx, reason string) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movements.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID:   c.Params("productId"),
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Reason:      reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de cambios de inventario
// @Description  Lista los eventos del ledger de un producto en una bodega, del
//
//	más reciente al más antiguo.
//
// @Tags         inventory
// @Produce      json
// @Param        productId     path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        limit         query  int     false  "Límite"   default(50)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ChangeHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	out, err := h.history.ListByProductAndWarehouse(
		c.Context(),
		c.Params("productId"),
		c.Query("warehouse_id"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
