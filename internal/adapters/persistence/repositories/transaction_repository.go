package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
)

// transactionRepository handles ledger data access via GORM
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger entry
func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindPendingConfirmation returns the in-flight OTP-confirmation entry for
// a loan, or nil when none exists
func (r *transactionRepository) FindPendingConfirmation(ctx context.Context, loanID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND type = ? AND status = ?",
			loanID, domain.TxTypePendingConfirmation, domain.TxStatusPending).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// ListByMember lists a member's ledger entries, optionally bounded by date
func (r *transactionRepository) ListByMember(ctx context.Context, memberID string, start, end *time.Time) ([]*models.Transaction, error) {
	q := r.db.WithContext(ctx).Where("member_id = ?", memberID)
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}

	var txs []*models.Transaction
	err := q.Order("created_at DESC").Find(&txs).Error
	return txs, err
}

// paymentTypes are the ledger entry types that represent money leaving the
// cooperative
var paymentTypes = []domain.TransactionType{
	domain.TxTypeLoanDisbursement,
	domain.TxTypeSavingsWithdrawal,
}

func (r *transactionRepository) paymentQuery(ctx context.Context, filter PaymentFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("status = ?", domain.TxStatusCompleted)

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	} else {
		q = q.Where("type IN ?", paymentTypes)
	}
	if filter.MemberID != "" {
		q = q.Where("member_id = ?", filter.MemberID)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}
	return q
}

// ListPayments lists completed outbound ledger entries with joined member,
// loan and savings info, plus the total row count for pagination
func (r *transactionRepository) ListPayments(ctx context.Context, filter PaymentFilter) ([]*models.Transaction, int64, error) {
	var total int64
	if err := r.paymentQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var txs []*models.Transaction
	err := r.paymentQuery(ctx, filter).
		Preload("Member").
		Preload("Loan.Category").
		Preload("Saving.Category").
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&txs).Error
	return txs, total, err
}

// SummarizeByType aggregates completed outbound entries per type
func (r *transactionRepository) SummarizeByType(ctx context.Context, filter PaymentFilter) ([]TypeSummary, error) {
	var summary []TypeSummary
	err := r.paymentQuery(ctx, filter).
		Select("type, COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS count").
		Group("type").
		Scan(&summary).Error
	return summary, err
}
