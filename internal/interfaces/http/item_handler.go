package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP de items del almacén.
type ItemHandler struct {
	uc *ledger.LedgerUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *ledger.LedgerUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un item del almacén
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "category (iron|cement|gasoline), label, initial_quantity opcional"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/storage/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in.Category, in.Label, in.InitialQuantity)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category o label inválidos"})
		}
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad inicial no puede ser negativa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// List godoc
// @Summary      Listar items con su stock derivado
// @Tags         storage
// @Produce      json
// @Param        category  query  string  false  "iron, cement o gasoline; vacío = todas"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/storage/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), c.Query("category"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un item (su libro cae en cascada)
// @Tags         storage
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.DeleteItem(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "item eliminado"})
}

// Reorder godoc
// @Summary      Reordenar items (drag & drop del tablero)
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderItemsRequest  true  "ids en el orden deseado"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage/items/reorder [put]
func (h *ItemHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.ReorderItems(c.Context(), in.ItemIDs)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_ids es requerido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "algún item no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "orden actualizado"})
}

// SetQuantity godoc
// @Summary      Fijar el balance de un item en un valor absoluto
// @Description  Edición rápida de la ficha: registra un asiento de ajuste por la
//               diferencia contra el balance derivado, nunca escribe una columna cruda.
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del item"
// @Param        body  body  dto.SetQuantityRequest  true  "cantidad absoluta (>= 0)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage/items/{id}/quantity [put]
func (h *ItemHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.SetQuantity(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad no puede ser negativa"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "cantidad ajustada"})
}

// GetStock godoc
// @Summary      Balance actual de un item
// @Tags         storage
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage/items/{id}/stock [get]
func (h *ItemHandler) GetStock(c *fiber.Ctx) error {
	itemID := c.Params("id")
	stock, err := h.uc.GetStock(c.Context(), itemID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{ItemID: itemID, CurrentStock: stock})
}

func toItemResponse(item *entity.StockItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           item.ID,
		Category:     item.Category,
		Label:        item.Label,
		DisplayOrder: item.DisplayOrder,
		CurrentStock: item.CurrentStock,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		ItemID:          t.ItemID,
		Type:            t.Type,
		Quantity:        t.Quantity,
		Description:     t.Description,
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}
