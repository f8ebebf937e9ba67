package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/models"
)

func TestAuth_Signup(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture)
		req     models.SignupRequest
		wantMsg string
		kind    apperror.Kind
	}{
		{
			name:    "invalid email",
			req:     models.SignupRequest{FullName: "A", Username: "a", Email: "nope", Password: "secret1"},
			wantMsg: MsgInvalidEmail,
			kind:    apperror.Validation,
		},
		{
			name:    "missing username",
			req:     models.SignupRequest{FullName: "X", Username: "", Email: "x@example.com", Password: "secret1"},
			wantMsg: MsgUsernameRequired,
			kind:    apperror.Validation,
		},
		{
			name:    "blank username",
			req:     models.SignupRequest{FullName: "X", Username: "   ", Email: "x@example.com", Password: "secret1"},
			wantMsg: MsgUsernameRequired,
			kind:    apperror.Validation,
		},
		{
			name:    "username taken beats email taken",
			setup:   func(t *testing.T, f *fixture) { f.signup(t, "alice") },
			req:     models.SignupRequest{FullName: "A", Username: "alice", Email: "alice@example.com", Password: "secret1"},
			wantMsg: MsgUsernameTaken,
			kind:    apperror.Conflict,
		},
		{
			name:    "email taken",
			setup:   func(t *testing.T, f *fixture) { f.signup(t, "alice") },
			req:     models.SignupRequest{FullName: "A", Username: "alice2", Email: "alice@example.com", Password: "secret1"},
			wantMsg: MsgEmailTaken,
			kind:    apperror.Conflict,
		},
		{
			name:    "username is case sensitive",
			setup:   func(t *testing.T, f *fixture) { f.signup(t, "alice") },
			req:     models.SignupRequest{FullName: "A", Username: "Alice", Email: "x@example.com", Password: "abc"},
			wantMsg: MsgPasswordTooShort,
			kind:    apperror.Validation,
		},
		{
			name:    "short password",
			req:     models.SignupRequest{FullName: "A", Username: "a", Email: "a@b.co", Password: "12345"},
			wantMsg: MsgPasswordTooShort,
			kind:    apperror.Validation,
		},
		{
			name:    "long password",
			req:     models.SignupRequest{FullName: "A", Username: "a", Email: "a@b.co", Password: strings.Repeat("x", 73)},
			wantMsg: MsgPasswordTooLong,
			kind:    apperror.Validation,
		},
		{
			name:    "missing full name",
			req:     models.SignupRequest{Username: "a", Email: "a@b.co", Password: "123456"},
			wantMsg: MsgFullNameRequired,
			kind:    apperror.Validation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			before := len(f.users.All())

			_, err := f.auth.Signup(context.Background(), tt.req)
			appErr, ok := apperror.As(err)
			require.True(t, ok, "expected AppError, got %v", err)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Len(t, f.users.All(), before)
		})
	}
}

func TestAuth_Signup_Success(t *testing.T) {
	f := newFixture(t)

	s, err := f.auth.Signup(context.Background(), models.SignupRequest{
		FullName: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotZero(t, s.Profile.ID)
	assert.Empty(t, s.Profile.Followers)
	assert.Empty(t, s.Profile.Following)

	id, err := f.tokens.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.Profile.ID, id)

	stored, err := f.users.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)

	body, err := json.Marshal(s.Profile)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), stored.Password)
}

func TestAuth_Login(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice")
	ctx := context.Background()

	s, err := f.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, s.Profile.ID)

	_, wrongPass := f.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong!!"})
	_, noUser := f.auth.Login(ctx, models.LoginRequest{Username: "ghost", Password: "secret1"})

	for _, err := range []error{wrongPass, noUser} {
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, MsgInvalidCredentials, appErr.Message)
		assert.Equal(t, 400, appErr.StatusCode())
	}
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestAuth_Login_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.users.Err = errors.New("db down")

	_, err := f.auth.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	_, isApp := apperror.As(err)
	assert.False(t, isApp)
}

func TestAuth_LoginByEmail(t *testing.T) {
	f := newFixture(t)
	alice := f.signup(t, "alice")

	s, err := f.auth.LoginByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, s.Profile.ID)

	_, err = f.auth.LoginByEmail(context.Background(), "nobody@example.com")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}
