package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/services"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

// AuthHandler serves the /v1/auth routes.
type AuthHandler struct {
	svc *services.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerReq struct {
	Credentials string `json:"credentials" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	err := h.svc.Register(c.UserContext(), req.Credentials, req.Name, req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusBadRequest, "Username already in use.")
	case errors.Is(err, services.ErrCredentialsTaken):
		return fail(c, fiber.StatusBadRequest, "Email / Phone already in use.")
	case err != nil:
		h.log.Error("register failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
	})
}

type checkUsernameReq struct {
	Username string `json:"username" validate:"required"`
}

func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	var req checkUsernameReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	available, err := h.svc.CheckUsername(c.UserContext(), req.Username)
	if err != nil {
		h.log.Error("check username failed", zap.Error(err))
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"availability": available})
}

type loginReq struct {
	Credentials string `json:"credentials" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, token, err := h.svc.Login(c.UserContext(), req.Credentials, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return fail(c, fiber.StatusUnauthorized, "Invalid username or password.")
	}
	if err != nil {
		h.log.Error("login failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User logged in successfully",
		"token":   token,
		"data":    user,
	})
}

type forgetPasswordReq struct {
	Credentials string `json:"credentials" validate:"required"`
}

func (h *AuthHandler) ForgetPassword(c *fiber.Ctx) error {
	var req forgetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	err := h.svc.ForgetPassword(c.UserContext(), req.Credentials)
	if errors.Is(err, services.ErrUserNotFound) {
		return fail(c, fiber.StatusNotFound, "No user found, please try with different credentials!")
	}
	if err != nil {
		h.log.Error("forget password failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Forget link send successfully to registered Email address.",
	})
}

type resetPasswordReq struct {
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	id := c.Params("id")
	resetToken := c.Params("resetToken")

	// Body is optional: without a new password the endpoint only validates
	// the token.
	var req resetPasswordReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid body")
		}
	}

	user, err := h.svc.ResetPassword(c.UserContext(), id, resetToken, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "No user found, please try with different credentials!")
	case errors.Is(err, services.ErrInvalidResetToken):
		return fail(c, fiber.StatusBadRequest, "Invalid token!")
	case errors.Is(err, services.ErrResetTokenExpired):
		return fail(c, fiber.StatusBadRequest, "Reset token has expired!")
	case err != nil:
		h.log.Error("reset password failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}
