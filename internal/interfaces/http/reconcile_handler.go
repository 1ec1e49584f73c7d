package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// ReconcileHandler expone la caché de niveles y el disparo manual de reconciliación.
type ReconcileHandler struct {
	uc *ledger.ReconcileUseCase
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(uc *ledger.ReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// Run godoc
// @Summary      Recomputar ahora todos los balances y refrescar la caché
// @Tags         storage
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/storage/reconcile [post]
func (h *ReconcileHandler) Run(c *fiber.Ctx) error {
	result, err := h.uc.ReconcileAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReconcileResponse{Items: result.Items, Drifts: result.Drifts})
}

// Levels godoc
// @Summary      Caché materializada de balances
// @Tags         storage
// @Produce      json
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/storage/levels [get]
func (h *ReconcileHandler) Levels(c *fiber.Ctx) error {
	levels, err := h.uc.ListLevels(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UpdatedAt: l.UpdatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
