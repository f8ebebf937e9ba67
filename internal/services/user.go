package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const (
	MsgPasswordPair         = "Please provide both current password and new password"
	MsgCurrentPasswordWrong = "Current password is incorrect"
)

const (
	suggestionSample = 10
	suggestionLimit  = 4
)

type Users struct {
	users     repositories.UserRepository
	follows   repositories.FollowRepository
	profiles  profiles
	images    ImageStore
	validator InputValidator
	cost      int
	logger    *logger.Logger
}

func NewUsers(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	images ImageStore,
	validator InputValidator,
	cost int,
	logger *logger.Logger,
) *Users {
	return &Users{
		users:     users,
		follows:   follows,
		profiles:  profiles{follows: follows, likes: likes},
		images:    images,
		validator: validator,
		cost:      cost,
		logger:    logger,
	}
}

// View returns the public profile of an already loaded user.
func (s *Users) View(ctx context.Context, user *models.User) (models.UserProfile, error) {
	return s.profiles.build(ctx, user)
}

// Profile looks a user up by username.
func (s *Users) Profile(ctx context.Context, username string) (models.UserProfile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.UserProfile{}, apperror.NewNotFound(MsgUserNotFound)
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return s.profiles.build(ctx, user)
}

// Suggested picks up to four users the caller does not follow yet out of a
// random sample.
func (s *Users) Suggested(ctx context.Context, userID uint) ([]models.User, error) {
	following, err := s.follows.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	sample, err := s.users.SampleUsers(ctx, userID, suggestionSample)
	if err != nil {
		return nil, fmt.Errorf("failed to sample users: %w", err)
	}

	suggested := make([]models.User, 0, suggestionLimit)
	for _, u := range sample {
		if u.ID == userID || containsID(following, u.ID) {
			continue
		}
		suggested = append(suggested, u)
		if len(suggested) == suggestionLimit {
			break
		}
	}
	return suggested, nil
}

// Update applies a profile edit. Empty fields keep their stored value.
func (s *Users) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (models.UserProfile, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return models.UserProfile{}, err
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return models.UserProfile{}, apperror.NewValidation(MsgPasswordPair)
	}
	if req.CurrentPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return models.UserProfile{}, apperror.NewBadRequest(MsgCurrentPasswordWrong)
		}
		if err := validatePassword(req.NewPassword); err != nil {
			return models.UserProfile{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	var newUsername, newEmail string
	if req.Email != "" && req.Email != user.Email {
		if !s.validator.IsEmail(req.Email) {
			return models.UserProfile{}, apperror.NewValidation(MsgInvalidEmail)
		}
		newEmail = req.Email
	}
	if req.Username != "" && req.Username != user.Username {
		newUsername = req.Username
	}
	if err := checkAvailable(ctx, s.users, user.ID, newUsername, newEmail); err != nil {
		return models.UserProfile{}, err
	}

	// old images are dropped only after the replacement is saved
	var stale, uploaded []string
	if req.ProfileImg != "" && req.ProfileImg != user.ProfileImg {
		url, err := uploadImage(ctx, s.images, s.validator, req.ProfileImg)
		if err != nil {
			return models.UserProfile{}, err
		}
		uploaded = append(uploaded, url)
		if user.ProfileImg != "" {
			stale = append(stale, user.ProfileImg)
		}
		user.ProfileImg = url
	}
	if req.CoverImg != "" && req.CoverImg != user.CoverImg {
		url, err := uploadImage(ctx, s.images, s.validator, req.CoverImg)
		if err != nil {
			s.discardImages(ctx, user.ID, uploaded)
			return models.UserProfile{}, err
		}
		uploaded = append(uploaded, url)
		if user.CoverImg != "" {
			stale = append(stale, user.CoverImg)
		}
		user.CoverImg = url
	}

	if newUsername != "" {
		user.Username = newUsername
	}
	if newEmail != "" {
		user.Email = newEmail
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.discardImages(ctx, user.ID, uploaded)
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.UserProfile{}, duplicateError(ctx, s.users, user.ID, newUsername, newEmail)
		}
		return models.UserProfile{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.discardImages(ctx, user.ID, stale)

	s.logger.Info("User service: profile updated", "user_id", user.ID)
	return s.profiles.build(ctx, user)
}

// discardImages deletes hosted images that no stored profile references.
// Failures are logged only; the object is orphaned in the bucket.
func (s *Users) discardImages(ctx context.Context, userID uint, urls []string) {
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Error("User service: failed to delete image", "user_id", userID, "url", url, "error", err)
		}
	}
}
