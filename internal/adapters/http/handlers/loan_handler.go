package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ListCategories lists loan products open for applications
func (h *LoanHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.loanService.ListActiveCategories(c.Context())
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Loan categories retrieved", categories)
}

// ApplyRequest represents a loan application request
type ApplyRequest struct {
	CategoryName   string          `json:"category_name"`
	Amount         decimal.Decimal `json:"amount"`
	DurationMonths int             `json:"duration_months"`
}

// Apply submits a loan application for the authenticated member
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application := &services.LoanApplication{
		MemberID:       middleware.AccountID(c),
		CategoryName:   domain.LoanName(req.CategoryName),
		Amount:         req.Amount,
		DurationMonths: req.DurationMonths,
	}

	result, err := h.loanService.Apply(c.Context(), application)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, result.Message, result)
}

// ConfirmRequest represents the OTP confirmation request
type ConfirmRequest struct {
	LoanID string `json:"loan_id"`
	OTP    string `json:"otp"`
}

// Confirm validates the OTP and queues the loan for decision
func (h *LoanHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.LoanID == "" || req.OTP == "" {
		return response.BadRequest(c, "Loan id and OTP are required")
	}

	loan, err := h.loanService.ConfirmWithOTP(c.Context(), req.LoanID, req.OTP, middleware.AccountID(c))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Loan application confirmed", loan)
}

// Approve approves a pending loan (admin only)
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loanID := c.Params("id")
	if loanID == "" {
		return response.BadRequest(c, "Loan id is required")
	}

	result, err := h.loanService.Approve(c.Context(), loanID, middleware.AccountID(c))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Loan approved successfully", result)
}

// RejectRequest represents a loan rejection request
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject rejects a pending loan (admin only)
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	loanID := c.Params("id")
	if loanID == "" {
		return response.BadRequest(c, "Loan id is required")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.loanService.Reject(c.Context(), loanID, middleware.AccountID(c), req.Reason)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Loan rejected successfully", result)
}

// Balance returns the authenticated member's loan balances
func (h *LoanHandler) Balance(c *fiber.Ctx) error {
	report, err := h.loanService.GetMemberLoanBalance(c.Context(), middleware.AccountID(c))
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Loan balance retrieved", report)
}

// ListAll lists every loan for the admin view
func (h *LoanHandler) ListAll(c *fiber.Ctx) error {
	loans, err := h.loanService.GetAllLoans(c.Context())
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Loans retrieved", loans)
}
