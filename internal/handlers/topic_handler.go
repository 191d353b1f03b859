package handlers

import (
	"errors"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TopicHandler struct {
	topics *services.TopicService
	tags   *services.TagService
}

func NewTopicHandler(topics *services.TopicService, tags *services.TagService) *TopicHandler {
	return &TopicHandler{topics: topics, tags: tags}
}

func (h *TopicHandler) List(c *fiber.Ctx) error {
	topics, err := h.topics.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch topics",
		})
	}
	return c.JSON(fiber.Map{"topics": topics})
}

func (h *TopicHandler) GetBySlug(c *fiber.Ctx) error {
	topic, err := h.topics.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Topic not found",
		})
	}
	return c.JSON(topic)
}

func (h *TopicHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	topic, err := h.topics.Create(req.Name, req.Icon, req.Slug, req.Description, req.SortOrder)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(topic)
}

func (h *TopicHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tags.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch tags",
		})
	}
	return c.JSON(fiber.Map{"tags": tags})
}

func (h *TopicHandler) DeleteTag(c *fiber.Ctx) error {
	tagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag ID",
		})
	}

	if err := h.tags.Delete(tagID); err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete tag",
		})
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
