package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/imagestore"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const (
	MsgPostEmpty    = "Post must have text or image"
	MsgNotPostOwner = "You are not authorized to delete this post"
	MsgTextRequired = "Text field is required"
	MsgPostDeleted  = "Post deleted successfully"
)

type Posts struct {
	users     repositories.UserRepository
	follows   repositories.FollowRepository
	likes     repositories.LikeRepository
	posts     repositories.PostRepository
	images    ImageStore
	validator InputValidator
	logger    *logger.Logger
}

func NewPosts(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	posts repositories.PostRepository,
	images ImageStore,
	validator InputValidator,
	logger *logger.Logger,
) *Posts {
	return &Posts{
		users:     users,
		follows:   follows,
		likes:     likes,
		posts:     posts,
		images:    images,
		validator: validator,
		logger:    logger,
	}
}

// Create stores a post with text, an image or both. The image arrives as
// a data URI and is stored by its hosted URL.
func (s *Posts) Create(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.Post, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	if req.Text == "" && req.Img == "" {
		return nil, apperror.NewValidation(MsgPostEmpty)
	}

	post := &models.Post{UserID: userID, Text: req.Text}
	if req.Img != "" {
		url, err := uploadImage(ctx, s.images, s.validator, req.Img)
		if err != nil {
			return nil, err
		}
		post.Img = url
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.logger.Error("Post service: failed to create post", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.logger.Info("Post service: post created", "user_id", userID, "post_id", post.ID.Hex())
	return post, nil
}

// Delete removes a post owned by userID together with its hosted image and
// the likedPosts entries pointing at it.
func (s *Posts) Delete(ctx context.Context, userID uint, postID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperror.NewForbidden(MsgNotPostOwner)
	}

	if post.Img != "" {
		if err := s.images.Delete(ctx, post.Img); err != nil {
			return fmt.Errorf("failed to delete post image: %w", err)
		}
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFound(MsgPostNotFound)
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := s.likes.DeleteLikesByPostID(ctx, postID); err != nil {
		s.logger.Error("Post service: failed to clear likes of deleted post", "post_id", postID, "error", err)
		return fmt.Errorf("failed to delete post likes: %w", err)
	}

	s.logger.Info("Post service: post deleted", "user_id", userID, "post_id", postID)
	return nil
}

// Comment appends a comment and returns the updated post.
func (s *Posts) Comment(ctx context.Context, userID uint, postID, text string) (*models.PostView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.NewValidation(MsgTextRequired)
	}

	post, err := s.posts.AddComment(ctx, postID, models.Comment{Text: text, UserID: userID})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	views, err := postViews(ctx, s.users, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// All lists every post, newest first.
func (s *Posts) All(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return postViews(ctx, s.users, posts)
}

// Following lists posts by the users userID follows.
func (s *Posts) Following(ctx context.Context, userID uint) ([]models.PostView, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	ids, err := s.follows.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	posts, err := s.posts.GetPostsByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return postViews(ctx, s.users, posts)
}

// ByUsername lists the posts of one user.
func (s *Posts) ByUsername(ctx context.Context, username string) ([]models.PostView, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	posts, err := s.posts.GetPostsByUserIDs(ctx, []uint{user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return postViews(ctx, s.users, posts)
}

// Liked lists the posts userID has liked that still exist.
func (s *Posts) Liked(ctx context.Context, userID uint) ([]models.PostView, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	ids, err := s.likes.GetLikedPostIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked posts: %w", err)
	}
	posts, err := s.posts.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return postViews(ctx, s.users, posts)
}

func (s *Posts) getPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// uploadImage hosts a data-URI image and returns its URL.
func uploadImage(ctx context.Context, images ImageStore, v InputValidator, dataURI string) (string, error) {
	if !v.IsDataURI(dataURI) {
		return "", apperror.NewValidation(MsgInvalidImage)
	}
	url, err := images.Upload(ctx, dataURI)
	if errors.Is(err, imagestore.ErrInvalidImage) {
		return "", apperror.NewValidation(MsgInvalidImage)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}
