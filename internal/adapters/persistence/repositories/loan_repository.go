package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanRepository handles loan data access via GORM
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a loan together with its attached repayment schedule.
// GORM inserts the associated repayments in the same statement batch, so
// inside a transaction the loan and its schedule commit atomically.
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// GetByIDForUpdate locks the loan row for the rest of the surrounding
// transaction. Concurrent approve/reject calls serialize here so that the
// status precondition and the mutation act on the same snapshot.
func (r *loanRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&loan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// GetByIDForMember gets a loan owned by the given member
func (r *loanRepository) GetByIDForMember(ctx context.Context, id, memberID string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		First(&loan, "id = ? AND member_id = ?", id, memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// ListBlocking lists the member's loans in states that block a new
// application
func (r *loanRepository) ListBlocking(ctx context.Context, memberID string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status IN ?", memberID, domain.BlockingLoanStatuses()).
		Find(&loans).Error
	return loans, err
}

// ListByMember lists a member's loans, newest first, with schedule and
// category preloaded
func (r *loanRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Repayments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListAll lists every loan with member, category and decision info
func (r *loanRepository) ListAll(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Category").
		Preload("ApprovedBy").
		Preload("RejectedBy").
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListDueRepayments lists pending installments due inside [start, end) for
// loans with money out, with the owning loan preloaded for member and
// reference info
func (r *loanRepository) ListDueRepayments(ctx context.Context, start, end time.Time) ([]*models.Repayment, error) {
	var repayments []*models.Repayment
	err := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.id = repayments.loan_id").
		Where("repayments.status = ?", domain.RepaymentStatusPending).
		Where("repayments.due_date >= ? AND repayments.due_date < ?", start, end).
		Where("loans.status IN ?", []domain.LoanStatus{
			domain.LoanStatusApproved,
			domain.LoanStatusDisbursed,
			domain.LoanStatusActive,
		}).
		Preload("Loan").
		Order("repayments.due_date ASC").
		Find(&repayments).Error
	return repayments, err
}

// Update persists loan mutations
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// SumAmountByCategory returns the member's total requested amount grouped
// by category
func (r *loanRepository) SumAmountByCategory(ctx context.Context, memberID string) ([]CategoryAmount, error) {
	var sums []CategoryAmount
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Where("member_id = ?", memberID).
		Group("category_id").
		Scan(&sums).Error
	return sums, err
}
