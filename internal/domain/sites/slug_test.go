package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme Store", "acme-store"},
		{"punctuation stripped", "Acme Store!", "acme-store"},
		{"collapses dashes", "a  --  b", "a-b"},
		{"trims dashes", "-hello-", "hello"},
		{"empty falls back", "!!!", "site"},
		{"already clean", "acme", "acme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MakeSlug(tc.in))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("acme"))
	assert.True(t, IsValidSlug("acme-store-2"))

	// all-digit slugs collide with the id URL shape
	assert.False(t, IsValidSlug("42"))
	assert.False(t, IsValidSlug("007"))

	// reserved prefixes
	assert.False(t, IsValidSlug("preview"))
	assert.False(t, IsValidSlug("api"))

	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Has Spaces"))
	assert.False(t, IsValidSlug("UPPER"))
}
