package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
)

// Notifications is an in-memory repositories.NotificationRepository.
type Notifications struct {
	mu     sync.RWMutex
	items  []models.Notification
	nextID uint
	Err    error
}

func NewNotifications() *Notifications {
	return &Notifications{nextID: 1}
}

func (r *Notifications) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	n.ID = r.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.nextID++
	r.items = append(r.items, *n)
	return nil
}

func (r *Notifications) GetByRecipientID(_ context.Context, recipientID uint) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Notification{}
	for _, n := range r.items {
		if n.ToID == recipientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *Notifications) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var count int64
	for _, n := range r.items {
		if n.ToID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *Notifications) MarkAsRead(_ context.Context, recipientID uint, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	marked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for i := range r.items {
		if r.items[i].ToID == recipientID && marked[r.items[i].ID] {
			r.items[i].Read = true
		}
	}
	return nil
}

func (r *Notifications) DeleteAllByRecipientID(_ context.Context, recipientID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	kept := r.items[:0]
	for _, n := range r.items {
		if n.ToID != recipientID {
			kept = append(kept, n)
		}
	}
	r.items = kept
	return nil
}
