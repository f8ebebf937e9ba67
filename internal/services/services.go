// Package services implements the account, social-graph, notification and
// post flows on top of the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Client-facing messages shared by several flows.
const (
	MsgUserNotFound     = "User not found"
	MsgPostNotFound     = "Post not found"
	MsgInvalidEmail     = "Invalid email format"
	MsgUsernameTaken    = "Username is already taken"
	MsgEmailTaken       = "Email is already taken"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgPasswordTooLong  = "Password must be at most 72 bytes long"
	MsgInvalidImage     = "Invalid image data"
)

const minPasswordLength = 6

// bcrypt ignores everything past 72 bytes and x/crypto rejects longer input.
const maxPasswordBytes = 72

// ImageStore hosts uploaded images and returns their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, dataURI string) (string, error)
	Delete(ctx context.Context, url string) error
}

// InputValidator checks the shape of email addresses and data URIs.
type InputValidator interface {
	IsEmail(s string) bool
	IsDataURI(s string) bool
}

// findUser loads a user by id, mapping absence to a 404.
func findUser(ctx context.Context, users repositories.UserRepository, id uint) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewNotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// checkAvailable reports which of username or email already belongs to a
// user other than selfID. Username is checked first.
func checkAvailable(ctx context.Context, users repositories.UserRepository, selfID uint, username, email string) error {
	if username != "" {
		existing, err := users.GetUserByUsername(ctx, username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to get user by username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperror.NewConflict(MsgUsernameTaken)
		}
	}
	if email != "" {
		existing, err := users.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to get user by email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return apperror.NewConflict(MsgEmailTaken)
		}
	}
	return nil
}

// duplicateError picks the conflict message after a unique index rejected
// a write that passed checkAvailable.
func duplicateError(ctx context.Context, users repositories.UserRepository, selfID uint, username, email string) error {
	if err := checkAvailable(ctx, users, selfID, username, email); err != nil {
		return err
	}
	return apperror.NewConflict(MsgUsernameTaken)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperror.NewValidation(MsgPasswordTooShort)
	}
	if len(password) > maxPasswordBytes {
		return apperror.NewValidation(MsgPasswordTooLong)
	}
	return nil
}
