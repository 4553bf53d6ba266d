package handlers

import (
	"net/http"
	"net/mail"

	"github.com/gofiber/fiber/v2"

	"github.com/gonexe/coupon-book-service/internal/api/dto"
	"github.com/gonexe/coupon-book-service/internal/service"
	apperrors "github.com/gonexe/coupon-book-service/pkg/util"
)

const minPasswordLength = 6

// UsersHandler exposes auth endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateCredentials(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateCredentials(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func validateCredentials(req dto.UserCredentialsRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.NewValidationError("Please provide a valid email", nil)
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("Password must be at least 6 characters", nil)
	}
	return nil
}
