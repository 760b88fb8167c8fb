package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler handles loan product administration endpoints
type MasterHandler struct {
	loanService *services.LoanService
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(loanService *services.LoanService) *MasterHandler {
	return &MasterHandler{loanService: loanService}
}

// ListCategories lists every loan product, active or not (admin only)
func (h *MasterHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.loanService.ListAllCategories(c.Context())
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Loan categories retrieved", categories)
}

// SetCategoryActiveRequest represents a product availability toggle
type SetCategoryActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// SetCategoryActive toggles a loan product's availability (admin only)
func (h *MasterHandler) SetCategoryActive(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return response.BadRequest(c, "Category name is required")
	}

	var req SetCategoryActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.IsActive == nil {
		return response.BadRequest(c, "is_active is required")
	}

	if err := h.loanService.SetCategoryActive(c.Context(), domain.LoanName(name), *req.IsActive); err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Loan category updated", nil)
}
