package handlers

import (
	"errors"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/generation"
	"github.com/glowstories/glowstories-backend/internal/scheduler"
	"github.com/glowstories/glowstories-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GenerationHandler exposes the admin generation surface: one-shot, batch,
// custom, and the schedule.
type GenerationHandler struct {
	gen   *services.GenerationService
	sched *scheduler.Scheduler
}

func NewGenerationHandler(gen *services.GenerationService, sched *scheduler.Scheduler) *GenerationHandler {
	return &GenerationHandler{gen: gen, sched: sched}
}

func generationStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNoAdminUser), errors.Is(err, services.ErrGeneratorDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *GenerationHandler) GeneratePost(c *fiber.Ctx) error {
	post, err := h.gen.GenerateOne(c.Context())
	if err != nil {
		return c.Status(generationStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *GenerationHandler) GenerateBatch(c *fiber.Ctx) error {
	var req dto.GenerateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		req.Count = 0
	}

	posts, err := h.gen.GenerateBatch(c.Context(), req.Count)
	if err != nil {
		return c.Status(generationStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"posts":     posts,
		"generated": len(posts),
	})
}

func (h *GenerationHandler) GenerateCustom(c *fiber.Ctx) error {
	var req dto.GenerateCustomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Procedure == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "procedure is required",
		})
	}

	post, err := h.gen.GenerateCustom(c.Context(), generation.Params{
		Age:         req.Age,
		Gender:      req.Gender,
		Procedure:   req.Procedure,
		Reason:      req.Reason,
		ContentType: req.ContentType,
		Topic:       req.Topic,
	})
	if err != nil {
		return c.Status(generationStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *GenerationHandler) GetSchedule(c *fiber.Ctx) error {
	enabled, expr := h.sched.Current()
	return c.JSON(fiber.Map{"enabled": enabled, "cron_expression": expr})
}

func (h *GenerationHandler) UpdateSchedule(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.sched.Update(req.Enabled, req.CronExpression); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid schedule: " + err.Error(),
		})
	}

	enabled, expr := h.sched.Current()
	return c.JSON(fiber.Map{"enabled": enabled, "cron_expression": expr})
}
