package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// TransactionHandler maneja las peticiones HTTP de un tipo de transacción.
// Se monta dos veces: una con KindEntry (/api/entries) y otra con KindExit
// (/api/exits); la lógica es simétrica.
type TransactionHandler struct {
	uc   *ledger.UseCase
	kind entity.TransactionKind
}

// NewTransactionHandler construye el handler para un tipo de movimiento.
func NewTransactionHandler(uc *ledger.UseCase, kind entity.TransactionKind) *TransactionHandler {
	return &TransactionHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Registrar movimiento (entrada o salida)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Movimiento con líneas"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente (solo salidas)"
// @Router       /api/entries [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), h.kind, id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "movimiento no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         ledger
// @Produce      json
// @Param        search  query  string  false  "Filtro por contraparte o número de nota"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/entries [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), h.kind, c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar movimiento (revierte el efecto anterior y aplica el nuevo)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.TransactionRequest  true  "Movimiento de reemplazo"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), h.kind, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento (revierte su efecto sobre el stock)
// @Tags         ledger
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), h.kind, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
