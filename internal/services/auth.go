package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUsernameRequired   = "Username is required"
	MsgFullNameRequired   = "Full name is required"
	MsgNoLinkedAccount    = "No account is linked to this email"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// Session is the outcome of a successful signup or login.
type Session struct {
	Profile models.UserProfile
	Token   string
}

type Auth struct {
	users     repositories.UserRepository
	profiles  profiles
	tokens    TokenIssuer
	validator InputValidator
	cost      int
	dummyHash []byte
	logger    *logger.Logger
}

// NewAuth creates the auth service. cost is the bcrypt work factor.
func NewAuth(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	tokens TokenIssuer,
	validator InputValidator,
	cost int,
	logger *logger.Logger,
) (*Auth, error) {
	// compared against when the username is unknown so both login paths
	// run exactly one bcrypt comparison
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Auth{
		users:     users,
		profiles:  profiles{follows: follows, likes: likes},
		tokens:    tokens,
		validator: validator,
		cost:      cost,
		dummyHash: dummy,
		logger:    logger,
	}, nil
}

// Signup validates the request in a fixed order, stores the user and
// opens a session.
func (a *Auth) Signup(ctx context.Context, req models.SignupRequest) (Session, error) {
	a.logger.Debug("Auth service: signup", "username", req.Username)

	if !a.validator.IsEmail(req.Email) {
		return Session{}, apperror.NewValidation(MsgInvalidEmail)
	}
	if strings.TrimSpace(req.Username) == "" {
		return Session{}, apperror.NewValidation(MsgUsernameRequired)
	}
	if err := checkAvailable(ctx, a.users, 0, req.Username, req.Email); err != nil {
		return Session{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return Session{}, err
	}
	if req.FullName == "" {
		return Session{}, apperror.NewValidation(MsgFullNameRequired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return Session{}, duplicateError(ctx, a.users, 0, req.Username, req.Email)
		}
		a.logger.Error("Auth service: failed to create user", "username", req.Username, "error", err)
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user signed up", "user_id", user.ID)
	return a.open(ctx, user)
}

// Login authenticates by username and password. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (Session, error) {
	user, err := a.users.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return Session{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash := a.dummyHash
	if user != nil {
		hash = []byte(user.Password)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil || user == nil {
		a.logger.Info("Auth service: login rejected", "username", req.Username)
		return Session{}, apperror.NewBadRequest(MsgInvalidCredentials)
	}

	return a.open(ctx, user)
}

// LoginByEmail opens a session for the account owning email. It backs
// Firebase sign-in, where the identity provider has already verified it.
func (a *Auth) LoginByEmail(ctx context.Context, email string) (Session, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return Session{}, apperror.NewNotFound(MsgNoLinkedAccount)
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return a.open(ctx, user)
}

func (a *Auth) open(ctx context.Context, user *models.User) (Session, error) {
	tok, err := a.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}
	profile, err := a.profiles.build(ctx, user)
	if err != nil {
		return Session{}, err
	}
	return Session{Profile: profile, Token: tok}, nil
}
