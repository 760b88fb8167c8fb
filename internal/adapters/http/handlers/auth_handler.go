package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterMember registers a new cooperative member
func (h *AuthHandler) RegisterMember(c *fiber.Ctx) error {
	var req services.RegisterMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "Email, first name and last name are required")
	}
	if req.Password == "" || req.Pin == "" {
		return response.BadRequest(c, "Password and PIN are required")
	}
	if req.Type == "" {
		req.Type = domain.MemberTypeCivilian
	}

	member, err := h.authService.RegisterMember(c.Context(), &req)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Member registered successfully", member)
}

// LoginMember authenticates a member by service number or email
func (h *AuthHandler) LoginMember(c *fiber.Ctx) error {
	var req services.MemberLoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.LoginMember(c.Context(), &req)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// LoginUser authenticates a staff account
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req services.UserLoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.LoginUser(c.Context(), &req)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Login successful", result)
}
