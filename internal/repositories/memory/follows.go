package memory

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Follows is an in-memory repositories.FollowRepository.
type Follows struct {
	mu     sync.RWMutex
	edges  []models.Follow
	nextID uint
	Err    error
}

func NewFollows() *Follows {
	return &Follows{nextID: 1}
}

func (r *Follows) CreateFollow(_ context.Context, follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.indexOf(follow.FollowerID, follow.FollowingID) >= 0 {
		return repositories.ErrDuplicate
	}
	follow.ID = r.nextID
	follow.CreatedAt = time.Now().UTC()
	r.nextID++
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *Follows) DeleteFollow(_ context.Context, followerID, followingID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	i := r.indexOf(followerID, followingID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.edges = append(r.edges[:i], r.edges[i+1:]...)
	return nil
}

func (r *Follows) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return false, r.Err
	}
	return r.indexOf(followerID, followingID) >= 0, nil
}

func (r *Follows) GetFollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	ids := []uint{}
	for _, e := range r.edges {
		if e.FollowingID == userID {
			ids = append(ids, e.FollowerID)
		}
	}
	return ids, nil
}

func (r *Follows) GetFollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	ids := []uint{}
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

func (r *Follows) indexOf(followerID, followingID uint) int {
	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return i
		}
	}
	return -1
}
