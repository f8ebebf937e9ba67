package memory

import (
	"context"
	"sync"
)

type like struct {
	userID uint
	postID string
}

// Likes is an in-memory repositories.LikeRepository.
type Likes struct {
	mu    sync.RWMutex
	likes []like
	Err   error
}

func NewLikes() *Likes {
	return &Likes{}
}

func (r *Likes) CreateLike(_ context.Context, userID uint, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, l := range r.likes {
		if l.userID == userID && l.postID == postID {
			return false, nil
		}
	}
	r.likes = append(r.likes, like{userID: userID, postID: postID})
	return true, nil
}

func (r *Likes) DeleteLike(_ context.Context, userID uint, postID string) error {
	return r.remove(func(l like) bool { return l.userID == userID && l.postID == postID })
}

func (r *Likes) GetLikedPostIDs(_ context.Context, userID uint) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	ids := []string{}
	for _, l := range r.likes {
		if l.userID == userID {
			ids = append(ids, l.postID)
		}
	}
	return ids, nil
}

func (r *Likes) DeleteLikesByPostID(_ context.Context, postID string) error {
	return r.remove(func(l like) bool { return l.postID == postID })
}

func (r *Likes) remove(match func(like) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	kept := r.likes[:0]
	for _, l := range r.likes {
		if !match(l) {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}
