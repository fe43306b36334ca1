package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-api/internal/domain"
)

func newProvider(t *testing.T, ttl time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider("test-secret", "stock-api", ttl, bcrypt.MinCost)
	require.NoError(t, err)
	return p
}

func TestNewProvider_Validacion(t *testing.T) {
	_, err := NewProvider("", "x", time.Hour, 0)
	assert.Error(t, err)
	_, err = NewProvider("s", "x", 0, 0)
	assert.Error(t, err)

	p, err := NewProvider("s", "x", time.Hour, 0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, p.cost)
}

func TestHashVerify(t *testing.T) {
	p := newProvider(t, time.Hour)
	hash, err := p.Hash("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)
	assert.True(t, p.Verify("motdepasse", hash))
	assert.False(t, p.Verify("mauvais", hash))
	assert.False(t, p.Verify("motdepasse", "no-es-bcrypt"))
}

func TestIssueResolve(t *testing.T) {
	p := newProvider(t, time.Hour)
	token, err := p.IssueToken("m-42")
	require.NoError(t, err)

	id, err := p.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, "m-42", id)
}

func TestResolveToken_Errores(t *testing.T) {
	p := newProvider(t, time.Hour)

	_, err := p.ResolveToken("")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = p.ResolveToken("a.b.c")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other, err := NewProvider("otro-secret", "stock-api", time.Hour, bcrypt.MinCost)
	require.NoError(t, err)
	foreign, err := other.IssueToken("m-1")
	require.NoError(t, err)
	_, err = p.ResolveToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := &Provider{secret: "test-secret", issuer: "stock-api", ttl: -time.Minute, cost: bcrypt.MinCost}
	old, err := expired.IssueToken("m-1")
	require.NoError(t, err)
	_, err = p.ResolveToken(old)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
