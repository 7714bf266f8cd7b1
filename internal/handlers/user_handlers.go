package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/services"
)

// UserHandler serves the /v1/user routes.
type UserHandler struct {
	svc *services.UserService
	log *zap.Logger
}

func NewUserHandler(svc *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	id, ok := callerID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.svc.GetCurrent(c.UserContext(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		h.log.Error("get current user failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User Found",
		"data":    user,
	})
}

func (h *UserHandler) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := h.svc.GetByUsername(c.UserContext(), username)
	if errors.Is(err, services.ErrUserNotFound) {
		return fail(c, fiber.StatusNotFound, "No user found")
	}
	if err != nil {
		h.log.Error("get user failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User Found",
		"data":    user,
	})
}

func (h *UserHandler) GetUserByUID(c *fiber.Ctx) error {
	uid, err := primitive.ObjectIDFromHex(c.Params("uid"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "No user found")
	}

	summary, err := h.svc.GetSummary(c.UserContext(), uid)
	if errors.Is(err, services.ErrUserNotFound) {
		return fail(c, fiber.StatusNotFound, "No user found")
	}
	if err != nil {
		h.log.Error("get user by uid failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User Found",
		"data":    summary,
	})
}

// Pointer fields distinguish an omitted key from an explicit empty value, so
// a partial PATCH leaves the other fields untouched.
type updateProfileReq struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

func (h *UserHandler) UpdateUserProfile(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "No user found")
	}

	var req updateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	user, err := h.svc.UpdateProfile(c.UserContext(), id, repository.ProfileUpdate{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
	})
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "No user found")
	case errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusBadRequest, "Username already exists, please choose a different username.")
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "Email already exists, please choose a different email.")
	case err != nil:
		h.log.Error("update profile failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User profile updated successfully",
		"data":    user,
	})
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "No user found")
	}

	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	err = h.svc.ChangePassword(c.UserContext(), id, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrMissingPasswords):
		return fail(c, fiber.StatusBadRequest, "Old password and new password are required")
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "No user found")
	case errors.Is(err, services.ErrWrongOldPassword):
		return fail(c, fiber.StatusBadRequest, "Old password is incorrect")
	case err != nil:
		h.log.Error("change password failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
	})
}

func (h *UserHandler) SearchUser(c *fiber.Ctx) error {
	query := c.Params("query")

	users, err := h.svc.Search(c.UserContext(), query)
	if err != nil {
		h.log.Error("search users failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

func (h *UserHandler) FollowUser(c *fiber.Ctx) error {
	caller, ok := callerID(c)
	if !ok {
		return unauthorized(c)
	}
	target, err := primitive.ObjectIDFromHex(c.Params("followId"))
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "invalid user id")
	}

	err = h.svc.Follow(c.UserContext(), caller, target)
	switch {
	case errors.Is(err, services.ErrAlreadyFollowing):
		return fail(c, fiber.StatusUnprocessableEntity, "You have already followed this user.")
	case errors.Is(err, services.ErrSelfFollow):
		return fail(c, fiber.StatusUnprocessableEntity, "You cannot follow yourself.")
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusUnprocessableEntity, "No user found")
	case err != nil:
		h.log.Error("follow failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User followed successfully",
	})
}

func (h *UserHandler) UnfollowUser(c *fiber.Ctx) error {
	caller, ok := callerID(c)
	if !ok {
		return unauthorized(c)
	}
	target, err := primitive.ObjectIDFromHex(c.Params("unFollowId"))
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, "invalid user id")
	}

	err = h.svc.Unfollow(c.UserContext(), caller, target)
	switch {
	case errors.Is(err, services.ErrNotFollowing):
		return fail(c, fiber.StatusUnprocessableEntity, "You are not following this user.")
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusUnprocessableEntity, "No user found")
	case err != nil:
		h.log.Error("unfollow failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User unfollowed successfully",
	})
}
