package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue(42, "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	tok, err := m.Issue(42, "john@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewManager("test-secret", time.Hour)
	verifier := NewManager("other-secret", time.Hour)

	tok, err := issuer.Issue(42, "john@example.com")
	require.NoError(t, err)

	claims, err := verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerify_Tampered(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue(42, "john@example.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJ1c2VySWQiOjk5OX0." + parts[2]

	claims, err := m.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims, err := m.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
