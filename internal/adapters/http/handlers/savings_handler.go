package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SavingsHandler handles savings endpoints
type SavingsHandler struct {
	savingsService *services.SavingsService
}

// NewSavingsHandler creates a new savings handler
func NewSavingsHandler(savingsService *services.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// DepositRequest represents a savings deposit request
type DepositRequest struct {
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// Deposit posts a savings deposit for the authenticated member
func (h *SavingsHandler) Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CategoryName == "" {
		return response.BadRequest(c, "Category name is required")
	}

	saving, err := h.savingsService.AddSavings(c.Context(), &services.DepositInput{
		MemberID:     middleware.AccountID(c),
		CategoryName: domain.SavingType(req.CategoryName),
		Amount:       req.Amount,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Deposit recorded successfully", saving)
}

// WithdrawRequest represents a savings withdrawal request
type WithdrawRequest struct {
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Pin          string          `json:"pin"`
}

// Withdraw posts a savings withdrawal for the authenticated member
func (h *SavingsHandler) Withdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CategoryName == "" || req.Pin == "" {
		return response.BadRequest(c, "Category name and PIN are required")
	}

	saving, err := h.savingsService.WithdrawSavings(c.Context(), &services.WithdrawInput{
		MemberID:     middleware.AccountID(c),
		CategoryName: domain.SavingType(req.CategoryName),
		Amount:       req.Amount,
		Pin:          req.Pin,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Withdrawal processed successfully", saving)
}

// Balance returns the authenticated member's savings balance
func (h *SavingsHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.savingsService.GetSavingsBalance(c.Context(), middleware.AccountID(c))
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Savings balance retrieved", balance)
}

// EditDeductionRequest represents a monthly deduction update
type EditDeductionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// EditDeduction updates the member's monthly deduction
func (h *SavingsHandler) EditDeduction(c *fiber.Ctx) error {
	var req EditDeductionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.savingsService.EditDeduction(c.Context(), middleware.AccountID(c), req.Amount); err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Monthly deduction updated successfully", nil)
}

// ListAll lists every savings entry (admin only)
func (h *SavingsHandler) ListAll(c *fiber.Ctx) error {
	savings, err := h.savingsService.GetAllSavings(c.Context())
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Savings retrieved", savings)
}
