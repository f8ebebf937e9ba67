package models

import "time"

type NotificationType string

const (
	NotificationFollow NotificationType = "follow"
	NotificationLike   NotificationType = "like"
)

// Notification is a follow or like event addressed to ToID (PostgreSQL).
type Notification struct {
	ID        uint             `json:"_id" gorm:"primaryKey"`
	FromID    uint             `json:"from" gorm:"index;not null"`
	ToID      uint             `json:"to" gorm:"index;not null"`
	Type      NotificationType `json:"type" gorm:"size:20;not null"`
	Read      bool             `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

// NotificationView is a notification with the actor resolved.
type NotificationView struct {
	ID        uint             `json:"_id"`
	From      UserCompact      `json:"from"`
	To        uint             `json:"to"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
