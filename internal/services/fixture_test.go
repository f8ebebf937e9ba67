package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories/memory"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/internal/token"
	"github.com/anonto42/nano-social/backend/internal/validators"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

type fixture struct {
	users         *memory.Users
	follows       *memory.Follows
	likes         *memory.Likes
	notifications *memory.Notifications
	posts         *memory.Posts
	images        *memory.Images
	tokens        *token.JWT

	auth  *Auth
	graph *Graph
	notes *Notifications
	feed  *Posts
	prof  *Users
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:         memory.NewUsers(),
		follows:       memory.NewFollows(),
		likes:         memory.NewLikes(),
		notifications: memory.NewNotifications(),
		posts:         memory.NewPosts(),
		images:        memory.NewImages(),
		tokens:        token.NewJWT("test-secret", time.Hour),
	}
	log := testutil.MakeNoopLogger()
	v := validators.NewValidator()

	auth, err := NewAuth(f.users, f.follows, f.likes, f.tokens, v, bcrypt.MinCost, log)
	require.NoError(t, err)
	f.auth = auth
	f.graph = NewGraph(f.users, f.follows, f.likes, f.posts, f.notifications, log)
	f.notes = NewNotifications(f.users, f.notifications, log)
	f.feed = NewPosts(f.users, f.follows, f.likes, f.posts, f.images, v, log)
	f.prof = NewUsers(f.users, f.follows, f.likes, f.images, v, bcrypt.MinCost, log)
	return f
}

// signup registers a user with password "secret1".
func (f *fixture) signup(t *testing.T, username string) models.UserProfile {
	t.Helper()
	s, err := f.auth.Signup(context.Background(), models.SignupRequest{
		FullName: username + " full",
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return s.Profile
}

func (f *fixture) post(t *testing.T, userID uint, text string) *models.Post {
	t.Helper()
	p, err := f.feed.Create(context.Background(), userID, models.CreatePostRequest{Text: text})
	require.NoError(t, err)
	return p
}
