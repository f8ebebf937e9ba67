package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const (
	MsgSelfFollow = "You can't follow/unfollow yourself"
	MsgFollowed   = "User followed successfully"
	MsgUnfollowed = "User unfollowed successfully"
)

// FollowResult tells whether the actor follows the target after the toggle.
type FollowResult struct {
	Followed bool
	Message  string
}

// Graph toggles follow edges and post likes and records the matching
// notifications.
type Graph struct {
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	likes         repositories.LikeRepository
	posts         repositories.PostRepository
	notifications repositories.NotificationRepository
	logger        *logger.Logger
}

func NewGraph(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	posts repositories.PostRepository,
	notifications repositories.NotificationRepository,
	logger *logger.Logger,
) *Graph {
	return &Graph{
		users:         users,
		follows:       follows,
		likes:         likes,
		posts:         posts,
		notifications: notifications,
		logger:        logger,
	}
}

// FollowUnfollow flips the actor -> target edge. Following emits a follow
// notification; unfollowing emits nothing.
func (g *Graph) FollowUnfollow(ctx context.Context, actorID, targetID uint) (FollowResult, error) {
	if actorID == targetID {
		return FollowResult{}, apperror.NewBadRequest(MsgSelfFollow)
	}
	if _, err := findUser(ctx, g.users, targetID); err != nil {
		return FollowResult{}, err
	}

	following, err := g.follows.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return FollowResult{}, fmt.Errorf("failed to check follow: %w", err)
	}

	if following {
		err := g.follows.DeleteFollow(ctx, actorID, targetID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return FollowResult{}, fmt.Errorf("failed to delete follow: %w", err)
		}
		g.logger.Info("Graph service: user unfollowed", "user_id", actorID, "target_id", targetID)
		return FollowResult{Followed: false, Message: MsgUnfollowed}, nil
	}

	err = g.follows.CreateFollow(ctx, &models.Follow{FollowerID: actorID, FollowingID: targetID})
	if errors.Is(err, repositories.ErrDuplicate) {
		// a concurrent request created the edge and its notification
		return FollowResult{Followed: true, Message: MsgFollowed}, nil
	}
	if err != nil {
		return FollowResult{}, fmt.Errorf("failed to create follow: %w", err)
	}

	if err := g.notify(ctx, actorID, targetID, models.NotificationFollow); err != nil {
		return FollowResult{}, err
	}

	g.logger.Info("Graph service: user followed", "user_id", actorID, "target_id", targetID)
	return FollowResult{Followed: true, Message: MsgFollowed}, nil
}

// LikeUnlike flips the actor's like on a post and returns the post's likes
// as stored after the update.
func (g *Graph) LikeUnlike(ctx context.Context, actorID uint, postID string) ([]uint, error) {
	post, err := g.posts.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if containsID(post.Likes, actorID) {
		likes, err := g.posts.RemoveLike(ctx, postID, actorID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound(MsgPostNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		if err := g.likes.DeleteLike(ctx, actorID, postID); err != nil {
			return nil, fmt.Errorf("failed to delete liked post: %w", err)
		}
		g.logger.Info("Graph service: post unliked", "user_id", actorID, "post_id", postID)
		return likes, nil
	}

	likes, err := g.posts.AddLike(ctx, postID, actorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}
	inserted, err := g.likes.CreateLike(ctx, actorID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to create liked post: %w", err)
	}
	// a racing like of the same pair already notified
	if !inserted {
		return likes, nil
	}
	if err := g.notify(ctx, actorID, post.UserID, models.NotificationLike); err != nil {
		return nil, err
	}

	g.logger.Info("Graph service: post liked", "user_id", actorID, "post_id", postID)
	return likes, nil
}

func (g *Graph) notify(ctx context.Context, from, to uint, kind models.NotificationType) error {
	n := &models.Notification{FromID: from, ToID: to, Type: kind}
	if err := g.notifications.CreateNotification(ctx, n); err != nil {
		g.logger.Error("Graph service: failed to create notification",
			"from", from,
			"to", to,
			"type", kind,
			"error", err)
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
