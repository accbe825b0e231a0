package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/infrastructure/catalog"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// ItemHandler maneja el catálogo de items de inventario (protegido).
type ItemHandler struct {
	uc      *usecase.InventoryItemUseCase
	queries *usecase.MovementQueryUseCase
	log     *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.InventoryItemUseCase, queries *usecase.MovementQueryUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, queries: queries, log: log}
}

// Create godoc
// @Summary      Crear item
// @Description  Si el body trae id se respeta; si no, el almacén lo asigna.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, brand, quantity, cost_price, selling_price, expiry_date, barcode"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Crear items en bloque
// @Description  Todo o nada: si un item falla no se crea ninguno.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCreateItemsRequest  true  "items"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/bulk [post]
func (h *ItemHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkCreateItemsRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	ids, err := h.uc.CreateBulk(c.Context(), in.Items)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{IDs: ids})
}

// Import godoc
// @Summary      Importar catálogo CSV
// @Description  Cabecera requerida: name, brand, cost_price, selling_price (opcionales: id, quantity, expiry_date, barcode).
// @Description  Todo o nada, igual que /bulk.
// @Tags         items
// @Security     Bearer
// @Accept       text/csv
// @Produce      json
// @Param        encoding  query  string  false  "utf-8 (por defecto) | latin1 | windows-1252"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	items, err := catalog.ParseItems(bytes.NewReader(c.Body()), c.Query("encoding"))
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
	}
	if len(items) == 0 {
		return respondError(c, h.log, fmt.Errorf("%w: catálogo sin filas", domain.ErrInvalidInput))
	}
	ids, err := h.uc.CreateBulk(c.Context(), items)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{IDs: ids})
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Buscar por nombre (subcadena)"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Obtener item por código de barras
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/barcode/{barcode} [get]
func (h *ItemHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.Context(), c.Params("barcode"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "campos del item"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateItemRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateBarcode godoc
// @Summary      Asignar código de barras
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                       true  "ID del item"
// @Param        body  body  dto.UpdateBarcodeRequest  true  "barcode"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/barcode [put]
func (h *ItemHandler) UpdateBarcode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateBarcodeRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.UpdateBarcode(c.Context(), id, in.Barcode); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar item
// @Description  Los movimientos que lo referencian se conservan.
// @Tags         items
// @Security     Bearer
// @Param        id   path  int  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expiry godoc
// @Summary      Días para el vencimiento
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {object}  dto.ExpiryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/expiry [get]
func (h *ItemHandler) Expiry(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Expiry(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// StockIns godoc
// @Summary      Entradas de stock de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del item"
// @Success      200  {array}   dto.StockInResponse
// @Router       /api/items/{id}/stock-ins [get]
func (h *ItemHandler) StockIns(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.queries.ListStockInsByItem(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
