package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueVerify(t *testing.T) {
	j := NewJWT("secret", 15*24*time.Hour)

	raw, err := j.Issue(42)
	require.NoError(t, err)

	id, err := j.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestJWT_Verify(t *testing.T) {
	good := NewJWT("secret", time.Hour)

	expired, err := NewJWT("secret", -time.Hour).Issue(1)
	require.NoError(t, err)
	foreign, err := NewJWT("other", time.Hour).Issue(1)
	require.NoError(t, err)
	noUser, err := good.Issue(0)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "expired", raw: expired, wantErr: ErrExpiredToken},
		{name: "wrong secret", raw: foreign, wantErr: ErrInvalidToken},
		{name: "garbage", raw: "not.a.token", wantErr: ErrInvalidToken},
		{name: "empty", raw: "", wantErr: ErrInvalidToken},
		{name: "zero user", raw: noUser, wantErr: ErrInvalidToken},
		{name: "alg none", raw: none, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := good.Verify(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCookies(t *testing.T) {
	c := NewCookie("abc", 15*24*time.Hour, true)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, 15*24*60*60, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	cleared := ExpiredCookie(false)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
	assert.False(t, cleared.Secure)
}
