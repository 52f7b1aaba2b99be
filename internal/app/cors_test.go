package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginHost(t *testing.T) {
	assert.Equal(t, "example.com", originHost("https://example.com"))
	assert.Equal(t, "example.com:3000", originHost("http://example.com:3000"))
	assert.Equal(t, "not a url", originHost("not a url"))
}

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"example.com", "*.example.com", "localhost:*"}

	assert.True(t, originAllowed(patterns, "example.com"))
	assert.True(t, originAllowed(patterns, "blog.example.com"))
	assert.True(t, originAllowed(patterns, "localhost:5173"))
	assert.False(t, originAllowed(patterns, "example.org"))
	assert.False(t, originAllowed(patterns, "evil.com"))
	assert.False(t, originAllowed(nil, "example.com"))
}
