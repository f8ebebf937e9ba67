package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID uint, ids []uint) error
	DeleteAllByRecipientID(ctx context.Context, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// GetByRecipientID returns every notification addressed to recipientID, newest first.
func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).
		Where("to_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("to_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flags the given notifications of recipientID as read. Rows
// created after the caller listed them are left unread.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("to_id = ? AND id IN ? AND read = ?", recipientID, ids, false).
		Update("read", true).Error
}

func (r *postgresNotificationRepository) DeleteAllByRecipientID(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).
		Where("to_id = ?", recipientID).
		Delete(&models.Notification{}).Error
}
