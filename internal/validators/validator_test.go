package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@mail.example.org", true},
		{"a@b", false},
		{"a b@c.d", false},
		{"@b.c", false},
		{"", false},
		{"a@@b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsEmail(tt.in))
		})
	}
}

func TestIsDataURI(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsDataURI("data:image/png;base64,iVBORw0KGgo="))
	assert.False(t, v.IsDataURI("https://example.com/cat.png"))
	assert.False(t, v.IsDataURI(""))
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	type body struct {
		IDToken string `validate:"required"`
		Email   string `validate:"omitempty,emailshape"`
	}

	assert.NoError(t, v.Validate(body{IDToken: "x"}))
	assert.Error(t, v.Validate(body{}))
	assert.Error(t, v.Validate(body{IDToken: "x", Email: "nope"}))
}
