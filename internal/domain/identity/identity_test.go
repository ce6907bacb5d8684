package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenIdentifier(t *testing.T) {
	assert.Equal(t, "https://clerk.example.com|user_123", TokenIdentifier("https://clerk.example.com/", "user_123"))
	assert.Equal(t, "issuer|sub", TokenIdentifier("issuer", "sub"))
}
