package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// memberRepository handles member data access via GORM
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByEmail gets a member by email
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByServiceNumber gets a personnel member by service number
func (r *memberRepository) GetByServiceNumber(ctx context.Context, serviceNumber string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, "service_number = ?", serviceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetForUnderwriting loads a member with the completed savings-deposit
// ledger entries newer than since. The preloaded transactions feed the
// savings-history eligibility checks. The member row is locked for the
// surrounding transaction so concurrent applications for the same member
// serialize: the second applicant's blocking-loan read runs after the first
// one's loan is committed.
func (r *memberRepository) GetForUnderwriting(ctx context.Context, id string, since time.Time) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.
				Where("type = ?", domain.TxTypeSavingsDeposit).
				Where("status = ?", domain.TxStatusCompleted).
				Where("created_at >= ?", since).
				Order("created_at DESC")
		}).
		First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// List returns members matching the filter along with the unpaginated count.
// Search matches email, first name or last name.
func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]*models.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []*models.Member
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// UpdateStatus sets the member's approval status
func (r *memberRepository) UpdateStatus(ctx context.Context, id string, status domain.MemberStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// UpdatePin replaces the member's transaction PIN hash
func (r *memberRepository) UpdatePin(ctx context.Context, id, hashedPin string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("pin", hashedPin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// CreateTermination records a member's termination request
func (r *memberRepository) CreateTermination(ctx context.Context, t *models.Termination) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListTerminations lists all termination requests, newest first
func (r *memberRepository) ListTerminations(ctx context.Context) ([]*models.Termination, error) {
	var terminations []*models.Termination
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("created_at DESC").
		Find(&terminations).Error
	if err != nil {
		return nil, err
	}
	return terminations, nil
}

// AddToTotalSavings adjusts the member's cumulative savings by delta.
// Negative delta records a withdrawal.
func (r *memberRepository) AddToTotalSavings(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		UpdateColumn("total_savings", gorm.Expr("total_savings + ?", delta)).Error
}

// UpdateMonthlyDeduction sets the member's monthly deduction amount
func (r *memberRepository) UpdateMonthlyDeduction(ctx context.Context, id string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("monthly_deduction", amount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
