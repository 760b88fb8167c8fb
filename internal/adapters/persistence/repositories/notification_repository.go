package repositories

import (
	"context"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
)

// notificationRepository handles notification data access via GORM
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByMember(ctx context.Context, memberID string, limit, offset int, status domain.NotificationStatus) ([]*models.Notification, error) {
	q := r.db.WithContext(ctx).Where("member_id = ?", memberID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit <= 0 {
		limit = 20
	}

	var notifications []*models.Notification
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, memberID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("member_id = ? AND status = ?", memberID, domain.NotificationUnread).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, memberID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND member_id = ?", id, memberID).
		Update("status", domain.NotificationRead)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, memberID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("member_id = ? AND status = ?", memberID, domain.NotificationUnread).
		Update("status", domain.NotificationRead).Error
}
