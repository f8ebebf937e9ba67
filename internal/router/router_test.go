package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories/memory"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/internal/token"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e, err := New(Dependencies{
		Users:         memory.NewUsers(),
		Follows:       memory.NewFollows(),
		Likes:         memory.NewLikes(),
		Notifications: memory.NewNotifications(),
		Posts:         memory.NewPosts(),
		Images:        memory.NewImages(),
		Tokens:        token.NewJWT("test-secret", 15*24*time.Hour),
		Logger:        testutil.MakeNoopLogger(),
		BcryptCost:    bcrypt.MinCost,
	})
	require.NoError(t, err)
	return e
}

type client struct {
	t       *testing.T
	e       *echo.Echo
	session string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: c.session})
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == token.CookieName {
			c.session = cookie.Value
		}
	}
	return rec
}

func TestSocialFlow(t *testing.T) {
	e := newTestEcho(t)
	alice := &client{t: t, e: e}
	bob := &client{t: t, e: e}

	rec := alice.do(http.MethodPost, "/api/auth/signup",
		`{"fullName":"Alice","username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = bob.do(http.MethodPost, "/api/auth/login", `{"username":"bob","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	unknown := rec.Body.String()
	rec = bob.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, unknown, rec.Body.String())
	assert.Empty(t, bob.session)

	rec = alice.do(http.MethodPost, "/api/posts/create", `{"text":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec = bob.do(http.MethodPost, "/api/auth/signup",
		`{"fullName":"Bob","username":"bob","email":"bob@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var bobProfile models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bobProfile))

	rec = bob.do(http.MethodPost, "/api/posts/like/"+post.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var likes []uint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &likes))
	assert.Equal(t, []uint{bobProfile.ID}, likes)

	rec = alice.do(http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.NotificationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationLike, list[0].Type)
	assert.Equal(t, "bob", list[0].From.Username)
	assert.False(t, list[0].Read)

	rec = alice.do(http.MethodGet, "/api/notifications", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	rec = alice.do(http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, alice.session)
	rec = alice.do(http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := newTestEcho(t)
	anon := &client{t: t, e: e}

	for _, path := range []string{"/api/posts/all", "/api/users/suggested", "/api/notifications", "/api/auth/me"} {
		rec := anon.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized: No Token Provided"}`, rec.Body.String(), path)
	}
}

func TestHealthAndLimits(t *testing.T) {
	e := newTestEcho(t)
	anon := &client{t: t, e: e}

	rec := anon.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	big := `{"text":"` + strings.Repeat("a", 6<<20) + `"}`
	rec = anon.do(http.MethodPost, "/api/auth/signup", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
