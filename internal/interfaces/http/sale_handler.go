package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// SaleHandler maneja ventas (protegido).
type SaleHandler struct {
	movements *inventory.MovementUseCase
	queries   *usecase.MovementQueryUseCase
	log       *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(movements *inventory.MovementUseCase, queries *usecase.MovementQueryUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{movements: movements, queries: queries, log: log}
}

func toSaleInput(in dto.SaleRequest) inventory.SaleInput {
	return inventory.SaleInput{
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		UnitPrice: in.UnitPrice,
	}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta la cantidad del item. 409 INSUFFICIENT_STOCK si la existencia no alcanza.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "item_id, quantity, unit_cost, unit_price"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	id, err := h.movements.ApplySale(c.Context(), toSaleInput(in))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// CreateBatch godoc
// @Summary      Registrar lote de ventas (recibo)
// @Description  Todo o nada: si una línea falla no se aplica ninguna.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleBatchRequest  true  "items"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/sales/batch [post]
func (h *SaleHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.SaleBatchRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	inputs := make([]inventory.SaleInput, 0, len(in.Items))
	for _, it := range in.Items {
		inputs = append(inputs, toSaleInput(it))
	}
	ids, err := h.movements.ApplySaleBatch(c.Context(), inputs)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{IDs: ids})
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Buscar por nombre de item"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.ListSales(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.queries.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
