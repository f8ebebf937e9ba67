// Package memory holds map-backed repositories for service and handler tests.
package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Users is an in-memory repositories.UserRepository. Err, when set, is
// returned by every call.
type Users struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
	Err    error
}

func NewUsers() *Users {
	return &Users{users: make(map[uint]models.User), nextID: 1}
}

func (r *Users) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.taken(0, user.Username, user.Email) {
		return repositories.ErrDuplicate
	}
	now := time.Now().UTC()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *Users) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Username == username })
}

func (r *Users) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Email == email })
}

func (r *Users) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Users) SampleUsers(_ context.Context, excludeID uint, size int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.User{}
	for _, u := range r.users {
		if u.ID != excludeID {
			out = append(out, u)
		}
	}
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

func (r *Users) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	if r.taken(user.ID, user.Username, user.Email) {
		return repositories.ErrDuplicate
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

// All returns every stored user ordered by id.
func (r *Users) All() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Users) findOne(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// taken reports whether another user already holds username or email.
func (r *Users) taken(selfID uint, username, email string) bool {
	for _, u := range r.users {
		if u.ID == selfID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}
