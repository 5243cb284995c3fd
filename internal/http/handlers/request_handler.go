package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lablink/backend/internal/http/dto"
	"github.com/lablink/backend/internal/metrics"
	"github.com/lablink/backend/internal/middleware"
	"github.com/lablink/backend/internal/repositories"
	"github.com/lablink/backend/internal/services"
	"go.uber.org/zap"
)

type RequestHandler struct {
	requests *services.RequestService
	log      *zap.Logger
}

func NewRequestHandler(requests *services.RequestService, log *zap.Logger) *RequestHandler {
	return &RequestHandler{requests: requests, log: log}
}

func (h *RequestHandler) SubmitRequest(c *fiber.Ctx) error {
	var req dto.SubmitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid item_id"})
	}

	r, err := h.requests.Submit(c.Context(), middleware.GetUserID(c), itemID, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	metrics.ObserveTransition(r.Status)
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	filter := repositories.RequestFilter{Limit: 20}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid limit"})
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid offset"})
		}
		filter.Offset = n
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	reqs, err := h.requests.List(c.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse{OK: true, Data: reqs, Total: len(reqs)})
}

func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	r, err := h.requests.Get(c.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *RequestHandler) AcceptRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	r, err := h.requests.Accept(c.Context(), middleware.GetUserID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	metrics.ObserveTransition(r.Status)
	return c.JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *RequestHandler) RejectRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	var req dto.RejectRequestRequest
	_ = c.BodyParser(&req)

	r, err := h.requests.Reject(c.Context(), middleware.GetUserID(c), id, req.Note)
	if err != nil {
		return respondError(c, h.log, err)
	}

	metrics.ObserveTransition(r.Status)
	return c.JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *RequestHandler) CloseRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	r, err := h.requests.Close(c.Context(), middleware.GetUserID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	metrics.ObserveTransition(r.Status)
	return c.JSON(dto.SuccessResponse{OK: true, Data: r})
}
