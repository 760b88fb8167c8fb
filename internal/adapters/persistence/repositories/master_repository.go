package repositories

import (
	"context"
	"errors"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
)

// loanCategoryRepository handles loan product data access
type loanCategoryRepository struct {
	db *gorm.DB
}

// NewLoanCategoryRepository creates a new loan category repository
func NewLoanCategoryRepository(db *gorm.DB) LoanCategoryRepository {
	return &loanCategoryRepository{db: db}
}

// Create creates a loan category
func (r *loanCategoryRepository) Create(ctx context.Context, category *models.LoanCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByName gets a category by its unique product name
func (r *loanCategoryRepository) GetByName(ctx context.Context, name domain.LoanName) (*models.LoanCategory, error) {
	var category models.LoanCategory
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List lists every loan category
func (r *loanCategoryRepository) List(ctx context.Context) ([]*models.LoanCategory, error) {
	var categories []*models.LoanCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListActive lists categories currently open for applications
func (r *loanCategoryRepository) ListActive(ctx context.Context) ([]*models.LoanCategory, error) {
	var categories []*models.LoanCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// SetActive toggles a category open/closed. Categories are never deleted
// while loans reference them.
func (r *loanCategoryRepository) SetActive(ctx context.Context, name domain.LoanName, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.LoanCategory{}).
		Where("name = ?", name).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// rankTermRepository handles rank-tier configuration access
type rankTermRepository struct {
	db *gorm.DB
}

// NewRankTermRepository creates a new rank term repository
func NewRankTermRepository(db *gorm.DB) RankTermRepository {
	return &rankTermRepository{db: db}
}

// CreateCompensation creates a rank compensation record with its nested
// regular-loan terms and category eligibilities
func (r *rankTermRepository) CreateCompensation(ctx context.Context, rc *models.RankCompensation) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

// GetCompensation gets the configuration for a rank
func (r *rankTermRepository) GetCompensation(ctx context.Context, rank domain.Rank) (*models.RankCompensation, error) {
	var rc models.RankCompensation
	err := r.db.WithContext(ctx).
		Preload("LoanTerms").
		Preload("EligibleCategories").
		First(&rc, "name = ?", rank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// FindRegularTerm resolves the REGULAR duration bucket for (rank, duration).
// Returns nil with no error when no bucket is configured.
func (r *rankTermRepository) FindRegularTerm(ctx context.Context, rank domain.Rank, durationMonths int) (*models.RegularLoanTerm, error) {
	var term models.RegularLoanTerm
	err := r.db.WithContext(ctx).
		Joins("JOIN rank_compensations ON rank_compensations.id = regular_loan_terms.rank_compensation_id").
		Where("rank_compensations.name = ? AND regular_loan_terms.duration_months = ?", rank, durationMonths).
		First(&term).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &term, nil
}

// FindCategoryEligibility resolves the fixed-category minimum for a rank.
// Returns nil with no error when the rank has no record for the category.
func (r *rankTermRepository) FindCategoryEligibility(ctx context.Context, rank domain.Rank, categoryID string) (*models.RankCategoryEligibility, error) {
	var elig models.RankCategoryEligibility
	err := r.db.WithContext(ctx).
		Joins("JOIN rank_compensations ON rank_compensations.id = rank_category_eligibilities.rank_compensation_id").
		Where("rank_compensations.name = ? AND rank_category_eligibilities.loan_category_id = ?", rank, categoryID).
		First(&elig).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &elig, nil
}
