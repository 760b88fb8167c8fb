package handlers

import (
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/pagination"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles ledger reporting endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// parseDate parses an optional RFC 3339 or YYYY-MM-DD query value
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}

// List lists the authenticated member's ledger entries
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	start := parseDate(c.Query("start_date"))
	end := parseDate(c.Query("end_date"))

	transactions, err := h.transactionService.GetTransactions(c.Context(), middleware.AccountID(c), start, end)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transactions retrieved", transactions)
}

// Payments reports completed outbound ledger entries (admin only)
func (h *TransactionHandler) Payments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.PaymentFilter{
		MemberID:  c.Query("member_id"),
		Type:      domain.TransactionType(c.Query("type")),
		StartDate: parseDate(c.Query("start_date")),
		EndDate:   parseDate(c.Query("end_date")),
		Limit:     params.Limit,
		Offset:    params.Offset,
	}

	page, err := h.transactionService.GetPayments(c.Context(), filter)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Payments retrieved", page)
}

// PaymentsSummary aggregates completed outbound entries per type (admin only)
func (h *TransactionHandler) PaymentsSummary(c *fiber.Ctx) error {
	filter := repositories.PaymentFilter{
		MemberID:  c.Query("member_id"),
		StartDate: parseDate(c.Query("start_date")),
		EndDate:   parseDate(c.Query("end_date")),
	}

	summary, err := h.transactionService.GetPaymentsSummary(c.Context(), filter)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Payments summary retrieved", summary)
}
