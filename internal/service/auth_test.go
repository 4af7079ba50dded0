package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBearerToken expects the token to be extracted only from a well-formed
// Bearer header.
func TestBearerToken(t *testing.T) {
	assert.Equal(t, "sesame", bearerToken("Bearer sesame"))
	assert.Equal(t, "sesame", bearerToken("Bearer   sesame  "))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic sesame"))
	assert.Equal(t, "", bearerToken("bearer sesame"))
	assert.Equal(t, "", bearerToken("Bearer "))
}
