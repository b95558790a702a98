package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-solidario/internal/application/basket"
	"github.com/jhoicas/almacen-solidario/internal/application/dto"
)

// BasketHandler maneja las peticiones HTTP de cestas de donación.
type BasketHandler struct {
	uc *basket.UseCase
}

// NewBasketHandler construye el handler.
func NewBasketHandler(uc *basket.UseCase) *BasketHandler {
	return &BasketHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cesta de donación
// @Tags         baskets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBasketRequest  true  "Cesta con posiciones"
// @Success      201   {object}  dto.BasketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/baskets [post]
func (h *BasketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBasketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cesta por ID
// @Tags         baskets
// @Produce      json
// @Param        id   path  string  true  "ID de la cesta"
// @Success      200  {object}  dto.BasketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [get]
func (h *BasketHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "cesta no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cestas
// @Tags         baskets
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BasketListResponse
// @Router       /api/baskets [get]
func (h *BasketHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cesta (verificación de versión)
// @Tags         baskets
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cesta"
// @Param        body  body  dto.UpdateBasketRequest  true  "Cesta de reemplazo con versión leída"
// @Success      200   {object}  dto.BasketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "La versión no coincide"
// @Router       /api/baskets/{id} [put]
func (h *BasketHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateBasketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar cesta (no afecta transacciones ya generadas)
// @Tags         baskets
// @Param        id  path  string  true  "ID de la cesta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/baskets/{id} [delete]
func (h *BasketHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Donate godoc
// @Summary      Donar cesta: expande sus posiciones en una salida atómica
// @Tags         baskets
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cesta"
// @Param        body  body  dto.DonateBasketRequest  true  "Beneficiario de la donación"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente: no se aplica ninguna línea"
// @Router       /api/baskets/{id}/donate [post]
func (h *BasketHandler) Donate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.DonateBasketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Donate(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
