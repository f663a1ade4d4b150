package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/backend/config"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken(42, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(42, &config.Config{JWTSecret: "right"})
	require.NoError(t, err)

	_, err = ParseJWTToken(token, &config.Config{JWTSecret: "wrong"})
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWTToken("not.a.token", &config.Config{JWTSecret: "testsecret"})
	assert.Error(t, err)
}
