package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lablink/backend/internal/http/dto"
	"github.com/lablink/backend/internal/middleware"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	"github.com/lablink/backend/internal/services"
	"go.uber.org/zap"
)

type ItemHandler struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewItemHandler(catalog *services.CatalogService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{catalog: catalog, log: log}
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	item := &models.Item{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
	}
	if err := h.catalog.CreateItem(c.Context(), middleware.GetUserID(c), item); err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	item, err := h.catalog.GetItem(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	filter := repositories.ItemFilter{}

	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("search"); v != "" {
		filter.NameContains = &v
	}
	filter.OnlyAvailable = c.QueryBool("available_only")

	items, err := h.catalog.ListItems(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse{OK: true, Data: items, Total: len(items)})
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	patch := services.ItemPatch{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
	}
	item, err := h.catalog.UpdateItem(c.Context(), middleware.GetUserID(c), id, patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item id"})
	}

	if err := h.catalog.DeleteItem(c.Context(), middleware.GetUserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
