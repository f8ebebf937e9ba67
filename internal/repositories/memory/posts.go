package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Posts is an in-memory repositories.PostRepository. The mutex stands in
// for MongoDB's per-document atomicity.
type Posts struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]models.Post
	Err   error
}

func NewPosts() *Posts {
	return &Posts{posts: make(map[primitive.ObjectID]models.Post)}
}

func (r *Posts) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *Posts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.lookup(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (r *Posts) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return r.filter(func(models.Post) bool { return true })
}

func (r *Posts) GetPostsByUserIDs(_ context.Context, userIDs []uint) ([]models.Post, error) {
	set := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return r.filter(func(p models.Post) bool {
		_, ok := set[p.UserID]
		return ok
	})
}

func (r *Posts) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.filter(func(p models.Post) bool {
		_, ok := set[p.ID.Hex()]
		return ok
	})
}

func (r *Posts) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	p, ok := r.lookup(id)
	if !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, p.ID)
	return nil
}

func (r *Posts) AddComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	return r.mutate(postID, func(p *models.Post) {
		if comment.ID.IsZero() {
			comment.ID = primitive.NewObjectID()
		}
		p.Comments = append(p.Comments, comment)
	})
}

func (r *Posts) AddLike(_ context.Context, postID string, userID uint) ([]uint, error) {
	p, err := r.mutate(postID, func(p *models.Post) {
		for _, id := range p.Likes {
			if id == userID {
				return
			}
		}
		p.Likes = append(p.Likes, userID)
	})
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (r *Posts) RemoveLike(_ context.Context, postID string, userID uint) ([]uint, error) {
	p, err := r.mutate(postID, func(p *models.Post) {
		kept := []uint{}
		for _, id := range p.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.Likes = kept
	})
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Count returns the number of stored posts.
func (r *Posts) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

func (r *Posts) mutate(postID string, fn func(p *models.Post)) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.lookup(postID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = time.Now().UTC()
	r.posts[p.ID] = clonePost(p)
	out := clonePost(p)
	return &out, nil
}

func (r *Posts) filter(match func(models.Post) bool) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Post{}
	for _, p := range r.posts {
		if match(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (r *Posts) lookup(id string) (models.Post, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, false
	}
	p, ok := r.posts[objID]
	return p, ok
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]uint{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}
