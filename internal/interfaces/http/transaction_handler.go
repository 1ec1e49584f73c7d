package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// TransactionHandler maneja las peticiones HTTP del libro de transacciones.
type TransactionHandler struct {
	uc *ledger.LedgerUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.LedgerUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar un asiento IN/OUT
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "item_id, type (IN|OUT), quantity, description y date opcionales"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage/transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.RecordTransaction(c.Context(), ledger.RecordTransactionInput{
		ItemID:      in.ItemID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id, type o date inválidos"})
		}
		if err == domain.ErrInvalidQuantity {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Cancel godoc
// @Summary      Cancelar (eliminar) un asiento
// @Description  Cancelar una salida siempre procede; cancelar una entrada se
//               rechaza si el total recomputado quedaría negativo.
// @Tags         storage
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/storage/transactions/{id} [delete]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	err := h.uc.CancelTransaction(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "asiento no encontrado"})
		}
		if err == domain.ErrWouldGoNegative {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WOULD_GO_NEGATIVE", Message: "cancelar esta entrada dejaría el total en negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "asiento cancelado"})
}

// ListByItem godoc
// @Summary      Libro de un item, más reciente primero
// @Tags         storage
// @Produce      json
// @Param        id     path   string  true   "ID del item"
// @Param        month  query  string  false  "Filtro YYYY-MM sobre la fecha de negocio"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage/items/{id}/transactions [get]
func (h *TransactionHandler) ListByItem(c *fiber.Ctx) error {
	list, err := h.uc.ListTransactions(c.Context(), c.Params("id"), c.Query("month"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser YYYY-MM"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Libro completo del almacén
// @Tags         storage
// @Produce      json
// @Param        category  query  string  false  "iron, cement o gasoline; vacío = todas"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/storage/transactions [get]
func (h *TransactionHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAllTransactions(c.Context(), c.Query("category"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(out)
}
