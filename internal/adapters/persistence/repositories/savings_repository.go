package repositories

import (
	"context"
	"errors"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
)

// savingsRepository handles savings data access via GORM
type savingsRepository struct {
	db *gorm.DB
}

// NewSavingsRepository creates a new savings repository
func NewSavingsRepository(db *gorm.DB) SavingsRepository {
	return &savingsRepository{db: db}
}

// Create creates a savings entry (negative amount for withdrawals)
func (r *savingsRepository) Create(ctx context.Context, saving *models.Saving) error {
	return r.db.WithContext(ctx).Create(saving).Error
}

// GetCategoryByType gets a savings product by its type
func (r *savingsRepository) GetCategoryByType(ctx context.Context, t domain.SavingType) (*models.SavingCategory, error) {
	var category models.SavingCategory
	err := r.db.WithContext(ctx).First(&category, "type = ?", t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSavingCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoryByID gets a savings product by id
func (r *savingsRepository) GetCategoryByID(ctx context.Context, id string) (*models.SavingCategory, error) {
	var category models.SavingCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSavingCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a savings product
func (r *savingsRepository) CreateCategory(ctx context.Context, category *models.SavingCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// SumByCategory returns the member's savings grouped by category
func (r *savingsRepository) SumByCategory(ctx context.Context, memberID string) ([]CategoryAmount, error) {
	var sums []CategoryAmount
	err := r.db.WithContext(ctx).
		Model(&models.Saving{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Where("member_id = ?", memberID).
		Group("category_id").
		Scan(&sums).Error
	return sums, err
}

// ListAll lists every savings entry with member and category preloaded
func (r *savingsRepository) ListAll(ctx context.Context) ([]*models.Saving, error) {
	var savings []*models.Saving
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Category").
		Order("created_at DESC").
		Find(&savings).Error
	return savings, err
}
