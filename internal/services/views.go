package services

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// profiles merges a user with the edge tables into its public profile.
type profiles struct {
	follows repositories.FollowRepository
	likes   repositories.LikeRepository
}

func (p profiles) build(ctx context.Context, user *models.User) (models.UserProfile, error) {
	followers, err := p.follows.GetFollowerIDs(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get followers: %w", err)
	}
	following, err := p.follows.GetFollowingIDs(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get following: %w", err)
	}
	liked, err := p.likes.GetLikedPostIDs(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get liked posts: %w", err)
	}
	return user.ToProfile(followers, following, liked), nil
}

// usersByID fetches every referenced user in one query.
func usersByID(ctx context.Context, users repositories.UserRepository, ids []uint) (map[uint]models.User, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := users.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	byID := make(map[uint]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	return byID, nil
}

// postViews resolves post and comment authors with a single user fetch.
func postViews(ctx context.Context, users repositories.UserRepository, posts []models.Post) ([]models.PostView, error) {
	var ids []uint
	for _, p := range posts {
		ids = append(ids, p.UserID)
		for _, c := range p.Comments {
			ids = append(ids, c.UserID)
		}
	}
	byID, err := usersByID(ctx, users, ids)
	if err != nil {
		return nil, err
	}

	lookup := func(id uint) *models.User {
		u, ok := byID[id]
		if !ok {
			return nil
		}
		return &u
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		comments := make([]models.CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, models.CommentView{ID: c.ID, Text: c.Text, User: lookup(c.UserID)})
		}
		likes := p.Likes
		if likes == nil {
			likes = []uint{}
		}
		views = append(views, models.PostView{
			ID:        p.ID,
			User:      lookup(p.UserID),
			Text:      p.Text,
			Img:       p.Img,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return views, nil
}
