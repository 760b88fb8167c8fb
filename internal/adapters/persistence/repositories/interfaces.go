package repositories

import (
	"context"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

// MemberFilter narrows member listing for administration
type MemberFilter struct {
	Search string
	Status domain.MemberStatus
	Limit  int
	Offset int
}

// MemberRepository defines member data access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	GetByServiceNumber(ctx context.Context, serviceNumber string) (*models.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]*models.Member, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.MemberStatus) error
	UpdatePin(ctx context.Context, id, hashedPin string) error
	CreateTermination(ctx context.Context, t *models.Termination) error
	ListTerminations(ctx context.Context) ([]*models.Termination, error)
	// GetForUnderwriting loads the member together with completed
	// savings-deposit ledger entries created at or after since. The member
	// row is locked (SELECT ... FOR UPDATE) so per-member applications
	// serialize for the remainder of the surrounding transaction.
	GetForUnderwriting(ctx context.Context, id string, since time.Time) (*models.Member, error)
	AddToTotalSavings(ctx context.Context, id string, delta decimal.Decimal) error
	UpdateMonthlyDeduction(ctx context.Context, id string, amount decimal.Decimal) error
}

// LoanRepository defines loan data access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	// GetByIDForUpdate locks the loan row for the remainder of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*models.Loan, error)
	GetByIDForMember(ctx context.Context, id, memberID string) (*models.Loan, error)
	ListBlocking(ctx context.Context, memberID string) ([]*models.Loan, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error)
	ListAll(ctx context.Context) ([]*models.Loan, error)
	// ListDueRepayments lists pending installments due inside [start, end)
	// for loans with money out, loan preloaded.
	ListDueRepayments(ctx context.Context, start, end time.Time) ([]*models.Repayment, error)
	Update(ctx context.Context, loan *models.Loan) error
	SumAmountByCategory(ctx context.Context, memberID string) ([]CategoryAmount, error)
}

// CategoryAmount is a grouped SUM of loan amounts per category
type CategoryAmount struct {
	CategoryID string          `json:"category_id"`
	Total      decimal.Decimal `json:"total"`
}

// LoanCategoryRepository defines loan product data access
type LoanCategoryRepository interface {
	Create(ctx context.Context, category *models.LoanCategory) error
	GetByName(ctx context.Context, name domain.LoanName) (*models.LoanCategory, error)
	List(ctx context.Context) ([]*models.LoanCategory, error)
	ListActive(ctx context.Context) ([]*models.LoanCategory, error)
	SetActive(ctx context.Context, name domain.LoanName, active bool) error
}

// RankTermRepository defines rank-tier configuration access
type RankTermRepository interface {
	CreateCompensation(ctx context.Context, rc *models.RankCompensation) error
	GetCompensation(ctx context.Context, rank domain.Rank) (*models.RankCompensation, error)
	// FindRegularTerm resolves the REGULAR duration bucket for a rank.
	FindRegularTerm(ctx context.Context, rank domain.Rank, durationMonths int) (*models.RegularLoanTerm, error)
	// FindCategoryEligibility resolves the fixed-category minimum for a rank.
	FindCategoryEligibility(ctx context.Context, rank domain.Rank, categoryID string) (*models.RankCategoryEligibility, error)
}

// SavingsRepository defines savings data access
type SavingsRepository interface {
	Create(ctx context.Context, saving *models.Saving) error
	GetCategoryByType(ctx context.Context, t domain.SavingType) (*models.SavingCategory, error)
	GetCategoryByID(ctx context.Context, id string) (*models.SavingCategory, error)
	CreateCategory(ctx context.Context, category *models.SavingCategory) error
	SumByCategory(ctx context.Context, memberID string) ([]CategoryAmount, error)
	ListAll(ctx context.Context) ([]*models.Saving, error)
}

// PaymentFilter narrows ledger queries for payment reporting
type PaymentFilter struct {
	MemberID  string
	Type      domain.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TypeSummary is a grouped aggregation of ledger entries per type
type TypeSummary struct {
	Type        domain.TransactionType `json:"transaction_type"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Count       int64                  `json:"transaction_count"`
}

// TransactionRepository defines ledger data access. Entries are append-only.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	// FindPendingConfirmation returns the in-flight OTP-confirmation entry
	// for a loan, or nil when none exists.
	FindPendingConfirmation(ctx context.Context, loanID string) (*models.Transaction, error)
	ListByMember(ctx context.Context, memberID string, start, end *time.Time) ([]*models.Transaction, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*models.Transaction, int64, error)
	SummarizeByType(ctx context.Context, filter PaymentFilter) ([]TypeSummary, error)
}

// UserRepository defines staff data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// NotificationRepository defines notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByMember(ctx context.Context, memberID string, limit, offset int, status domain.NotificationStatus) ([]*models.Notification, error)
	CountUnread(ctx context.Context, memberID string) (int64, error)
	MarkRead(ctx context.Context, id, memberID string) error
	MarkAllRead(ctx context.Context, memberID string) error
}

// Stores bundles every repository bound to the same database handle. Inside
// a transaction every store operates on the transaction's connection.
type Stores struct {
	Members       MemberRepository
	Loans         LoanRepository
	Categories    LoanCategoryRepository
	RankTerms     RankTermRepository
	Savings       SavingsRepository
	Transactions  TransactionRepository
	Users         UserRepository
	Notifications NotificationRepository
}

// Transactor runs a function inside one atomic unit of work. The stores
// passed to fn are bound to the transaction; any error rolls everything
// back so no partially-applied state is ever visible.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(s *Stores) error) error
}
