package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	FirstName string `validate:"required" label:"First name"`
	Email     string `validate:"required,email" label:"Email address"`
	Nickname  string `validate:"max=3"`
}

func TestMessages(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		in   signup
		want []string
	}{
		{
			name: "all missing",
			in:   signup{},
			want: []string{"First name is required", "Email address is required"},
		},
		{
			name: "bad email",
			in:   signup{FirstName: "Joe", Email: "nope"},
			want: []string{"Please provide a valid email address"},
		},
		{
			name: "falls back to field name",
			in:   signup{FirstName: "Joe", Email: "joe@example.com", Nickname: "longer"},
			want: []string{"Nickname must be at most 3 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, Messages(err))
		})
	}
}

func TestMessagesValid(t *testing.T) {
	err := New().Struct(signup{FirstName: "Joe", Email: "joe@example.com"})
	assert.NoError(t, err)
	assert.Nil(t, Messages(err))
}

func TestMessagesForeignError(t *testing.T) {
	assert.Nil(t, Messages(errors.New("boom")))
}

type credentials struct {
	Name     string `validate:"required,notblank" label:"First name"`
	Password string `validate:"required,maxbytes=72" label:"Password"`
}

func TestMessagesCustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		in   credentials
		want []string
	}{
		{
			name: "whitespace only",
			in:   credentials{Name: " \t\n", Password: "secret"},
			want: []string{"First name is required"},
		},
		{
			name: "multibyte password over the byte limit",
			in:   credentials{Name: "Joe", Password: strings.Repeat("é", 40)},
			want: []string{"Password must be at most 72 bytes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, Messages(err))
		})
	}

	assert.NoError(t, v.Struct(credentials{Name: " Joe ", Password: strings.Repeat("a", 72)}))
}
