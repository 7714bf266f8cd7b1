package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/services"
)

// TweetHandler serves the /v1/tweet routes.
type TweetHandler struct {
	svc *services.TweetService
	log *zap.Logger
}

func NewTweetHandler(svc *services.TweetService, log *zap.Logger) *TweetHandler {
	return &TweetHandler{svc: svc, log: log}
}

type createTweetReq struct {
	Tweet  string   `json:"tweet"`
	Images []string `json:"images"`
}

func (h *TweetHandler) CreateTweet(c *fiber.Ctx) error {
	caller, ok := callerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req createTweetReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	tweet, err := h.svc.Create(c.UserContext(), caller, req.Tweet, req.Images)
	switch {
	case errors.Is(err, services.ErrEmptyTweet):
		return fail(c, fiber.StatusBadRequest, "Tweet cannot be empty")
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		h.log.Error("create tweet failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Tweet created successfully",
		"tweet":   tweet,
	})
}

func (h *TweetHandler) GetTweets(c *fiber.Ctx) error {
	tweets, err := h.svc.List(c.UserContext())
	if err != nil {
		h.log.Error("list tweets failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Tweets fetched successfully",
		"tweets":  tweets,
	})
}

func (h *TweetHandler) GetUserTweets(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return unauthorized(c)
	}

	tweets, err := h.svc.ListByUser(c.UserContext(), userID)
	if err != nil {
		h.log.Error("list user tweets failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Tweets fetched successfully",
		"tweets":  tweets,
	})
}

type likeTweetReq struct {
	TweetID string `json:"tweetId"`
}

func (h *TweetHandler) LikeTweet(c *fiber.Ctx) error {
	caller, ok := callerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req likeTweetReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	tweetID, err := primitive.ObjectIDFromHex(req.TweetID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Tweet not found")
	}

	tweet, err := h.svc.ToggleLike(c.UserContext(), caller, tweetID)
	if errors.Is(err, services.ErrTweetNotFound) {
		return fail(c, fiber.StatusNotFound, "Tweet not found")
	}
	if err != nil {
		h.log.Error("like tweet failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Tweet liked / unliked successfully",
		"tweet":   tweet,
	})
}
