package services

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const MsgNotificationsDeleted = "Notifications deleted successfully"

type Notifications struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	logger        *logger.Logger
}

func NewNotifications(
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	logger *logger.Logger,
) *Notifications {
	return &Notifications{users: users, notifications: notifications, logger: logger}
}

// List returns the recipient's notifications newest first with the actor
// resolved, then marks the returned ones read. The returned items keep the
// read flag they had before the call.
func (s *Notifications) List(ctx context.Context, recipientID uint) ([]models.NotificationView, error) {
	items, err := s.notifications.GetByRecipientID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	actors := make([]uint, 0, len(items))
	var unread []uint
	for _, n := range items {
		actors = append(actors, n.FromID)
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	byID, err := usersByID(ctx, s.users, actors)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(items))
	for _, n := range items {
		from := models.UserCompact{ID: n.FromID}
		if u, ok := byID[n.FromID]; ok {
			from = u.ToCompact()
		}
		views = append(views, models.NotificationView{
			ID:        n.ID,
			From:      from,
			To:        n.ToID,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	if err := s.notifications.MarkAsRead(ctx, recipientID, unread); err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return views, nil
}

// UnreadCount counts unread notifications without changing them.
func (s *Notifications) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	count, err := s.notifications.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// DeleteAll removes every notification addressed to the recipient.
func (s *Notifications) DeleteAll(ctx context.Context, recipientID uint) error {
	if err := s.notifications.DeleteAllByRecipientID(ctx, recipientID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	s.logger.Info("Notification service: notifications deleted", "user_id", recipientID)
	return nil
}
