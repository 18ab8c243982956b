package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const maxPostListLimit = 200

func (handler *Handler) GetIdentity(c *fiber.Ctx) error {
	userID, err := handler.community.EnsureUserID(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(identityResponse{UserID: userID, UserName: services.AnonymousName(userID)})
}

func (handler *Handler) ListPosts(c *fiber.Ctx) error {
	filter := services.PostFilter{}

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category := models.PostCategory(raw)
		if !category.Valid() {
			return apiError(c, fiber.StatusBadRequest, "unknown category")
		}
		filter.Category = &category
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > maxPostListLimit {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	posts, err := handler.community.ListPosts(c.UserContext(), filter)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (handler *Handler) CreatePost(c *fiber.Ctx) error {
	request := createPostRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	post, err := handler.community.CreatePost(c.UserContext(), services.NewPostInput{
		Title:    request.Title,
		Content:  request.Content,
		Category: models.PostCategory(strings.TrimSpace(request.Category)),
		Phase:    models.CyclePhase(strings.TrimSpace(request.Phase)),
		Tags:     request.Tags,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (handler *Handler) TogglePostLike(c *fiber.Ctx) error {
	liked, err := handler.community.TogglePostLike(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

func (handler *Handler) ListComments(c *fiber.Ctx) error {
	comments, err := handler.community.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (handler *Handler) AddComment(c *fiber.Ctx) error {
	request := addCommentRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := handler.community.AddComment(c.UserContext(), c.Params("id"), request.Content)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (handler *Handler) ListBuddies(c *fiber.Ctx) error {
	buddies, err := handler.community.ListBuddies(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"buddies": buddies})
}

func (handler *Handler) AddBuddy(c *fiber.Ctx) error {
	request := addBuddyRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	buddy, err := handler.community.AddBuddy(c.UserContext(), request.UserID, request.UserName)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buddy)
}

func (handler *Handler) GenerateShareCode(c *fiber.Ctx) error {
	code, err := handler.community.GenerateShareCode(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"code": code})
}

func (handler *Handler) DecodeShareCode(c *fiber.Ctx) error {
	userID, found, err := handler.community.DecodeShareCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "share code not found")
	}
	return c.JSON(identityResponse{UserID: userID, UserName: services.AnonymousName(userID)})
}
