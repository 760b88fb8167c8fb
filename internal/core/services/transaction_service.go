package services

import (
	"context"
	"strings"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TransactionService exposes read-side ledger queries
type TransactionService struct {
	stores *repositories.Stores
}

// NewTransactionService creates a new transaction service
func NewTransactionService(stores *repositories.Stores) *TransactionService {
	return &TransactionService{stores: stores}
}

// GetTransactions lists a member's ledger entries, newest first, optionally
// bounded by date
func (s *TransactionService) GetTransactions(ctx context.Context, memberID string, start, end *time.Time) ([]*models.Transaction, error) {
	return s.stores.Transactions.ListByMember(ctx, memberID, start, end)
}

// Payment is the flattened reporting view of one outbound ledger entry
type Payment struct {
	ID              string                   `json:"id"`
	MemberName      string                   `json:"member_name"`
	MemberEmail     string                   `json:"member_email,omitempty"`
	MemberPhone     string                   `json:"member_phone,omitempty"`
	ServiceNumber   string                   `json:"service_number,omitempty"`
	MemberType      domain.MemberType        `json:"member_type,omitempty"`
	TransactionType domain.TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	Reference       string                   `json:"reference"`
	Date            time.Time                `json:"date"`
	Status          domain.TransactionStatus `json:"status"`
	LoanReference   string                   `json:"loan_reference,omitempty"`
	LoanCategory    domain.LoanName          `json:"loan_category,omitempty"`
	SavingsCategory string                   `json:"savings_category,omitempty"`
	SavingsType     domain.SavingType        `json:"savings_type,omitempty"`
}

// PaymentPage carries one page of payments with its pagination info
type PaymentPage struct {
	Payments []Payment `json:"payments"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	HasMore  bool      `json:"has_more"`
}

// GetPayments reports completed outbound ledger entries (disbursements and
// withdrawals) flattened with member, loan and savings info
func (s *TransactionService) GetPayments(ctx context.Context, filter repositories.PaymentFilter) (*PaymentPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	rows, total, err := s.stores.Transactions.ListPayments(ctx, filter)
	if err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, flattenPayment(row))
	}

	return &PaymentPage{
		Payments: payments,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
		HasMore:  int64(filter.Offset+len(rows)) < total,
	}, nil
}

func flattenPayment(row *models.Transaction) Payment {
	payment := Payment{
		ID:              row.ID,
		TransactionType: row.Type,
		Amount:          row.Amount,
		Description:     row.Description,
		Reference:       row.Reference,
		Date:            row.CreatedAt,
		Status:          row.Status,
	}

	if row.Member != nil {
		payment.MemberName = strings.TrimSpace(row.Member.FullName())
		payment.MemberEmail = row.Member.Email
		payment.MemberPhone = row.Member.Phone
		payment.MemberType = row.Member.Type
		if row.Member.ServiceNumber != nil {
			payment.ServiceNumber = *row.Member.ServiceNumber
		}
	}
	if row.Loan != nil {
		payment.LoanReference = row.Loan.Reference
		if row.Loan.Category != nil {
			payment.LoanCategory = row.Loan.Category.Name
		}
	}
	if row.Saving != nil && row.Saving.Category != nil {
		payment.SavingsCategory = row.Saving.Category.Name
		payment.SavingsType = row.Saving.Category.Type
	}
	return payment
}

// GetPaymentsSummary aggregates completed outbound entries per type
func (s *TransactionService) GetPaymentsSummary(ctx context.Context, filter repositories.PaymentFilter) ([]repositories.TypeSummary, error) {
	filter.Type = ""
	filter.Limit = 0
	filter.Offset = 0
	return s.stores.Transactions.SummarizeByType(ctx, filter)
}
