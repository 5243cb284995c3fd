package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lablink/backend/internal/http/dto"
	"github.com/lablink/backend/internal/repositories"
	"github.com/lablink/backend/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	audit *services.AuditService
	log   *zap.Logger
}

func NewAuditHandler(audit *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

func (h *AuditHandler) QueryAuditLog(c *fiber.Ctx) error {
	filter := repositories.AuditFilter{}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid start_date, use YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid end_date, use YYYY-MM-DD"})
		}
		// Inclusive of the whole end day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if v := c.Query("actor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid actor_id"})
		}
		filter.ActorID = &id
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}
	if v := c.Query("item_name"); v != "" {
		filter.ItemNameLike = &v
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid limit"})
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid offset"})
		}
		filter.Offset = n
	}

	entries, err := h.audit.Query(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse{OK: true, Data: entries, Total: len(entries)})
}
