package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/usecase"
)

// ReferenceHandler maneja los catálogos auxiliares: categorías, sectores y
// proveedores.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// ─── Categorías ─────────────────────────────────────────────────────────────

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameRequest  true  "Nombre"
// @Success      201   {object}  dto.NameResponse
// @Router       /api/categories [post]
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Renombrar categoría
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.NameRequest  true  "Nombre"
// @Success      200   {object}  dto.NameResponse
// @Router       /api/categories/{id} [put]
func (h *ReferenceHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCategory(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Borrar categoría
// @Tags         references
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/categories/{id} [delete]
func (h *ReferenceHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteCategory(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.NameResponse
// @Router       /api/categories [get]
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ─── Sectores ───────────────────────────────────────────────────────────────

// CreateSector godoc
// @Summary      Crear sector
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameRequest  true  "Nombre"
// @Success      201   {object}  dto.NameResponse
// @Router       /api/sectors [post]
func (h *ReferenceHandler) CreateSector(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSector(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSector godoc
// @Summary      Renombrar sector
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.NameRequest  true  "Nombre"
// @Success      200   {object}  dto.NameResponse
// @Router       /api/sectors/{id} [put]
func (h *ReferenceHandler) UpdateSector(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSector(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSector godoc
// @Summary      Borrar sector
// @Tags         references
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/sectors/{id} [delete]
func (h *ReferenceHandler) DeleteSector(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteSector(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSectors godoc
// @Summary      Listar sectores
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.NameResponse
// @Router       /api/sectors [get]
func (h *ReferenceHandler) ListSectors(c *fiber.Ctx) error {
	out, err := h.uc.ListSectors(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ─── Proveedores ────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *ReferenceHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSupplier(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *ReferenceHandler) UpdateSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSupplier(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Borrar proveedor
// @Tags         references
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *ReferenceHandler) DeleteSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteSupplier(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *ReferenceHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
