package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// StockInHandler maneja entradas de mercancía y su reversión (protegido).
type StockInHandler struct {
	movements *inventory.MovementUseCase
	queries   *usecase.MovementQueryUseCase
	log       *logger.Logger
}

// NewStockInHandler construye el handler.
func NewStockInHandler(movements *inventory.MovementUseCase, queries *usecase.MovementQueryUseCase, log *logger.Logger) *StockInHandler {
	return &StockInHandler{movements: movements, queries: queries, log: log}
}

func toStockInInput(in dto.StockInRequest) inventory.StockInInput {
	return inventory.StockInInput{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		InvoiceNo:  in.InvoiceNo,
		BatchNo:    in.BatchNo,
		ExpiryDate: in.ExpiryDate,
	}
}

// Create godoc
// @Summary      Registrar entrada de stock
// @Description  Registra la entrada y suma la cantidad a la existencia del item en una sola transacción.
// @Tags         stock-ins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "item_id, quantity, invoice_no, batch_no, expiry_date"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-ins [post]
func (h *StockInHandler) Create(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	id, err := h.movements.ApplyStockIn(c.Context(), toStockInInput(in))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// CreateBatch godoc
// @Summary      Registrar lote de entradas
// @Description  Todo o nada: si una entrada falla no se aplica ninguna.
// @Tags         stock-ins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInBatchRequest  true  "items"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-ins/batch [post]
func (h *StockInHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.StockInBatchRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	inputs := make([]inventory.StockInInput, 0, len(in.Items))
	for _, it := range in.Items {
		inputs = append(inputs, toStockInInput(it))
	}
	ids, err := h.movements.ApplyStockInBatch(c.Context(), inputs)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{IDs: ids})
}

// Reverse godoc
// @Summary      Revertir entrada de stock
// @Description  Elimina la entrada y descuenta su cantidad de la existencia del item.
// @Tags         stock-ins
// @Security     Bearer
// @Param        id   path  int  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-ins/{id} [delete]
func (h *StockInHandler) Reverse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.movements.ReverseStockIn(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar entradas de stock
// @Description  Más recientes primero. Con column (invoice_no|batch_no) y q filtra por subcadena.
// @Tags         stock-ins
// @Security     Bearer
// @Produce      json
// @Param        column  query  string  false  "invoice_no | batch_no"
// @Param        q       query  string  false  "texto a buscar"
// @Success      200  {array}   dto.StockInResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-ins [get]
func (h *StockInHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.ListStockIns(c.Context(), c.Query("column"), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada de stock
// @Tags         stock-ins
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.StockInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-ins/{id} [get]
func (h *StockInHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.queries.GetStockIn(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
