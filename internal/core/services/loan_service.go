package services

import (
	"context"
	"fmt"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/reference"

	"github.com/shopspring/decimal"
)

const (
	otpLength        = 6
	otpExpiryMinutes = 5
)

// LoanService drives loan origination and the approval state machine
type LoanService struct {
	transactor repositories.Transactor
	stores     *repositories.Stores
	notify     *NotificationService
	devMode    bool
}

// NewLoanService creates a new loan service
func NewLoanService(transactor repositories.Transactor, stores *repositories.Stores, notify *NotificationService, devMode bool) *LoanService {
	return &LoanService{
		transactor: transactor,
		stores:     stores,
		notify:     notify,
		devMode:    devMode,
	}
}

// ListActiveCategories lists loan products currently open for applications
func (s *LoanService) ListActiveCategories(ctx context.Context) ([]*models.LoanCategory, error) {
	return s.stores.Categories.ListActive(ctx)
}

// ListAllCategories lists every loan product, active or not
func (s *LoanService) ListAllCategories(ctx context.Context) ([]*models.LoanCategory, error) {
	return s.stores.Categories.List(ctx)
}

// SetCategoryActive toggles a loan product's availability. Products are
// never deleted while loans reference them.
func (s *LoanService) SetCategoryActive(ctx context.Context, name domain.LoanName, active bool) error {
	if !name.IsValid() {
		return fmt.Errorf("%w: unknown loan category %q", domain.ErrInvalidInput, string(name))
	}
	return s.stores.Categories.SetActive(ctx, name, active)
}

// ApplyResult is the outcome of a successful loan application
type ApplyResult struct {
	LoanID    string            `json:"loan_id"`
	Reference string            `json:"reference"`
	Status    domain.LoanStatus `json:"status"`
	OTP       string            `json:"otp,omitempty"`
	Message   string            `json:"message"`
}

// Apply validates a loan application, resolves its terms, and creates the
// loan in PENDING_VERIFICATION with its repayment schedule and a short
// lived OTP. Everything from the member load to the loan creation runs in
// one transaction so no partially applied loan is ever visible and two
// simultaneous applications cannot both pass the existing-loan check.
func (s *LoanService) Apply(ctx context.Context, application *LoanApplication) (*ApplyResult, error) {
	if application.MemberID == "" || application.CategoryName == "" ||
		application.Amount.IsZero() || application.DurationMonths == 0 {
		return nil, domain.ErrMissingFields
	}

	var result *ApplyResult
	err := s.transactor.WithinTransaction(ctx, func(tx *repositories.Stores) error {
		now := time.Now()
		since := now.AddDate(0, 0, -SavingsHistoryWindowDays)

		member, err := tx.Members.GetForUnderwriting(ctx, application.MemberID, since)
		if err != nil {
			return err
		}

		if err := CheckLoanEligibility(ctx, tx, member, application, now); err != nil {
			return err
		}

		terms, err := ResolveLoanTerms(ctx, tx, member, application)
		if err != nil {
			return err
		}

		otp, err := reference.GenerateOTP(otpLength)
		if err != nil {
			return err
		}
		otpExpiresAt := now.Add(otpExpiryMinutes * time.Minute)

		ref, err := reference.ForLoan()
		if err != nil {
			return err
		}

		loan := &models.Loan{
			MemberID:       application.MemberID,
			CategoryID:     terms.Category.ID,
			Amount:         application.Amount,
			InterestRate:   terms.InterestRate,
			DurationMonths: application.DurationMonths,
			ApprovedAmount: decimal.Zero,
			Status:         domain.LoanStatusPendingVerification,
			OTP:            &otp,
			OTPExpiresAt:   &otpExpiresAt,
			Reference:      ref,
			Repayments:     BuildRepaymentSchedule(application.Amount, terms.InterestRate, application.DurationMonths, now),
		}
		if err := tx.Loans.Create(ctx, loan); err != nil {
			return err
		}

		result = &ApplyResult{
			LoanID:    loan.ID,
			Reference: loan.Reference,
			Status:    loan.Status,
			Message:   "OTP sent to registered contact",
		}
		if s.devMode {
			result.OTP = otp
			result.Message = "OTP generated for development"
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify.LoanApplied(application.MemberID, result.LoanID, application.Amount, application.CategoryName)
	return result, nil
}

// ConfirmWithOTP validates the submitted code and advances the loan from
// PENDING_VERIFICATION to PENDING. The pending-confirmation ledger entry
// doubles as an idempotency guard, checked under the row lock before the
// code comparison, so at most one confirmation proceeds for a given loan
// and losers observe ErrConfirmationInProgress.
func (s *LoanService) ConfirmWithOTP(ctx context.Context, loanID, otp, memberID string) (*models.Loan, error) {
	var confirmed *models.Loan
	err := s.transactor.WithinTransaction(ctx, func(tx *repositories.Stores) error {
		loan, err := tx.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.MemberID != memberID {
			return domain.ErrLoanNotFound
		}

		// The guard runs before the code comparison: a confirm that lost
		// the race observes the winner's pending entry here instead of the
		// cleared OTP.
		existing, err := tx.Transactions.FindPendingConfirmation(ctx, loanID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConfirmationInProgress
		}

		// Do not reveal whether the code was wrong or merely expired.
		if loan.OTP == nil || loan.OTPExpiresAt == nil ||
			*loan.OTP != otp || !time.Now().Before(*loan.OTPExpiresAt) {
			return domain.ErrInvalidOrExpiredOTP
		}

		loan.Status = domain.LoanStatusPending
		loan.OTP = nil
		loan.OTPExpiresAt = nil
		if err := tx.Loans.Update(ctx, loan); err != nil {
			return err
		}

		entry := &models.Transaction{
			MemberID:    &memberID,
			LoanID:      &loan.ID,
			Type:        domain.TxTypePendingConfirmation,
			Amount:      loan.Amount,
			Status:      domain.TxStatusPending,
			Reference:   loan.Reference,
			Description: "Loan application verified via OTP",
		}
		if err := tx.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		confirmed = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// TransitionResult is the outcome of an approve or reject decision
type TransitionResult struct {
	Loan        *models.Loan        `json:"loan"`
	Transaction *models.Transaction `json:"transaction"`
}

// Approve moves a PENDING loan to APPROVED and posts the disbursement
// ledger entry. The status check and the mutation share one transaction
// with the loan row locked, so of two racing decisions exactly one wins
// and the loser observes ErrLoanNotPending.
func (s *LoanService) Approve(ctx context.Context, loanID, adminID string) (*TransitionResult, error) {
	result, err := s.transition(ctx, loanID, func(loan *models.Loan) *models.Transaction {
		loan.Status = domain.LoanStatusApproved
		loan.ApprovedAmount = loan.Amount
		loan.ApprovedByID = &adminID

		return &models.Transaction{
			MemberID:    &loan.MemberID,
			LoanID:      &loan.ID,
			Type:        domain.TxTypeLoanDisbursement,
			Amount:      loan.Amount,
			Status:      domain.TxStatusCompleted,
			Reference:   loan.Reference,
			Description: "Loan approved by admin",
		}
	})
	if err != nil {
		return nil, err
	}

	s.notify.LoanDecided(result.Loan.MemberID, result.Loan.ID, result.Loan.Amount, domain.LoanStatusApproved)
	return result, nil
}

// Reject moves a PENDING loan to REJECTED and posts a rejection ledger
// entry carrying the reason
func (s *LoanService) Reject(ctx context.Context, loanID, adminID, rejectionReason string) (*TransitionResult, error) {
	if rejectionReason == "" {
		rejectionReason = "No reason provided"
	}

	result, err := s.transition(ctx, loanID, func(loan *models.Loan) *models.Transaction {
		loan.Status = domain.LoanStatusRejected
		loan.RejectedByID = &adminID

		return &models.Transaction{
			MemberID:    &loan.MemberID,
			LoanID:      &loan.ID,
			Type:        domain.TxTypeLoanRejected,
			Amount:      loan.Amount,
			Status:      domain.TxStatusCompleted,
			Reference:   loan.Reference,
			Description: fmt.Sprintf("Loan rejected: %s", rejectionReason),
		}
	})
	if err != nil {
		return nil, err
	}

	s.notify.LoanDecided(result.Loan.MemberID, result.Loan.ID, result.Loan.Amount, domain.LoanStatusRejected)
	return result, nil
}

// transition applies a single-winner state change to a PENDING loan. mutate
// updates the locked loan in place and returns the ledger entry to post.
func (s *LoanService) transition(ctx context.Context, loanID string, mutate func(loan *models.Loan) *models.Transaction) (*TransitionResult, error) {
	var result *TransitionResult
	err := s.transactor.WithinTransaction(ctx, func(tx *repositories.Stores) error {
		loan, err := tx.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != domain.LoanStatusPending {
			return domain.ErrLoanNotPending
		}

		entry := mutate(loan)
		if err := tx.Loans.Update(ctx, loan); err != nil {
			return err
		}
		if err := tx.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		result = &TransitionResult{Loan: loan, Transaction: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// NextPayment is the earliest unpaid installment of a loan
type NextPayment struct {
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// RepaymentProgress summarizes how far a loan's schedule has progressed
type RepaymentProgress struct {
	Paid       int `json:"paid"`
	Remaining  int `json:"remaining"`
	Percentage int `json:"percentage"`
}

// LoanBalance is the read-side view of one loan
type LoanBalance struct {
	LoanID             string            `json:"loan_id"`
	Category           domain.LoanName   `json:"category"`
	Reference          string            `json:"reference"`
	OriginalAmount     decimal.Decimal   `json:"original_amount"`
	ApprovedAmount     decimal.Decimal   `json:"approved_amount"`
	InterestRate       decimal.Decimal   `json:"interest_rate"`
	DurationMonths     int               `json:"duration_months"`
	TotalPaid          decimal.Decimal   `json:"total_paid"`
	OutstandingBalance decimal.Decimal   `json:"outstanding_balance"`
	Status             domain.LoanStatus `json:"status"`
	StartDate          *time.Time        `json:"start_date,omitempty"`
	EndDate            *time.Time        `json:"end_date,omitempty"`
	NextPayment        *NextPayment      `json:"next_payment,omitempty"`
	RepaymentProgress  RepaymentProgress `json:"repayment_progress"`
}

// CategorySummary aggregates a member's borrowing per loan product
type CategorySummary struct {
	CategoryID          string          `json:"category_id"`
	CategoryName        domain.LoanName `json:"category_name"`
	MaxAmount           decimal.Decimal `json:"max_amount"`
	CollectedAmount     decimal.Decimal `json:"collected_amount"`
	RemainingAmount     decimal.Decimal `json:"remaining_amount"`
	PercentageCollected int             `json:"percentage_collected"`
}

// BalanceSummary totals a member's position across every loan
type BalanceSummary struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	ActiveLoans      int             `json:"active_loans"`
	CompletedLoans   int             `json:"completed_loans"`
	DefaultedLoans   int             `json:"defaulted_loans"`
}

// LoanBalanceReport is the full read-side aggregation for one member
type LoanBalanceReport struct {
	Loans      []LoanBalance     `json:"loans"`
	Summary    BalanceSummary    `json:"summary"`
	Categories []CategorySummary `json:"categories"`
}

// GetMemberLoanBalance aggregates a member's loans into balances, schedule
// progress, and per-category totals
func (s *LoanService) GetMemberLoanBalance(ctx context.Context, memberID string) (*LoanBalanceReport, error) {
	categories, err := s.stores.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.stores.Loans.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	balances := make([]LoanBalance, 0, len(loans))
	summary := BalanceSummary{
		TotalOutstanding: decimal.Zero,
		TotalPaid:        decimal.Zero,
	}
	for _, loan := range loans {
		balance := buildLoanBalance(loan)
		balances = append(balances, balance)

		if balance.OutstandingBalance.IsPositive() {
			summary.TotalOutstanding = summary.TotalOutstanding.Add(balance.OutstandingBalance)
		}
		summary.TotalPaid = summary.TotalPaid.Add(balance.TotalPaid)
		switch loan.Status {
		case domain.LoanStatusActive:
			summary.ActiveLoans++
		case domain.LoanStatusCompleted:
			summary.CompletedLoans++
		case domain.LoanStatusDefaulted:
			summary.DefaultedLoans++
		}
	}

	categoryTotals, err := s.stores.Loans.SumAmountByCategory(ctx, memberID)
	if err != nil {
		return nil, err
	}
	totalsByCategory := make(map[string]decimal.Decimal, len(categoryTotals))
	for _, ct := range categoryTotals {
		totalsByCategory[ct.CategoryID] = ct.Total
	}

	categorySummaries := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		collected := totalsByCategory[category.ID]
		maxAmount := decimal.Zero
		if category.MaxAmount != nil {
			maxAmount = *category.MaxAmount
		}
		remaining := maxAmount.Sub(collected)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		percentage := 0
		if maxAmount.IsPositive() {
			percentage = int(collected.Div(maxAmount).Mul(hundred).Round(0).IntPart())
		}

		categorySummaries = append(categorySummaries, CategorySummary{
			CategoryID:          category.ID,
			CategoryName:        category.Name,
			MaxAmount:           maxAmount,
			CollectedAmount:     collected,
			RemainingAmount:     remaining,
			PercentageCollected: percentage,
		})
	}

	return &LoanBalanceReport{
		Loans:      balances,
		Summary:    summary,
		Categories: categorySummaries,
	}, nil
}

func buildLoanBalance(loan *models.Loan) LoanBalance {
	totalPaid := decimal.Zero
	paidCount := 0
	var next *NextPayment
	for i := range loan.Repayments {
		r := &loan.Repayments[i]
		switch r.Status {
		case domain.RepaymentStatusPaid:
			totalPaid = totalPaid.Add(r.Amount)
			paidCount++
		case domain.RepaymentStatusPending:
			// Repayments arrive ordered by due date, so the first
			// pending one is the next payment.
			if next == nil {
				next = &NextPayment{DueDate: r.DueDate, Amount: r.Amount}
			}
		}
	}

	outstanding := loan.ApprovedAmount.Sub(totalPaid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	total := len(loan.Repayments)
	percentage := 0
	if total > 0 {
		percentage = int(decimal.NewFromInt(int64(paidCount)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(hundred).Round(0).IntPart())
	}

	categoryName := domain.LoanName("")
	if loan.Category != nil {
		categoryName = loan.Category.Name
	}

	return LoanBalance{
		LoanID:             loan.ID,
		Category:           categoryName,
		Reference:          loan.Reference,
		OriginalAmount:     loan.Amount,
		ApprovedAmount:     loan.ApprovedAmount,
		InterestRate:       loan.InterestRate,
		DurationMonths:     loan.DurationMonths,
		TotalPaid:          totalPaid,
		OutstandingBalance: outstanding,
		Status:             loan.Status,
		StartDate:          loan.StartDate,
		EndDate:            loan.EndDate,
		NextPayment:        next,
		RepaymentProgress: RepaymentProgress{
			Paid:       paidCount,
			Remaining:  total - paidCount,
			Percentage: percentage,
		},
	}
}

// GetAllLoans lists every loan with member and decision info for the admin
// view
func (s *LoanService) GetAllLoans(ctx context.Context) ([]*models.Loan, error) {
	return s.stores.Loans.ListAll(ctx)
}
