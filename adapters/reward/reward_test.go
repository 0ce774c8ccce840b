package reward

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFlag(t *testing.T) {
	issuer := NewStaticFlag("s3cr3t-w0rds")

	body, err := issuer.Issue("192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "flag{s3cr3t-w0rds}\n", body)

	// Same flag regardless of who finished.
	other, err := issuer.Issue("198.51.100.7")
	require.NoError(t, err)
	assert.Equal(t, body, other)
}

func TestJWTIssuerRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	issuer := NewJWTIssuer(key, "s3cr3t-w0rds")

	body, err := issuer.Issue("192.0.2.1")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(body, "\n"))

	claims, err := ParseReward(strings.TrimSuffix(body, "\n"), key)
	require.NoError(t, err)
	assert.Equal(t, "flag{s3cr3t-w0rds}", claims.Flag)
	assert.Equal(t, "192.0.2.1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTIssuerRejectsWrongKey(t *testing.T) {
	issuer := NewJWTIssuer([]byte("correct-key-correct-key-32bytes!"), "secret")

	body, err := issuer.Issue("192.0.2.1")
	require.NoError(t, err)

	_, err = ParseReward(strings.TrimSuffix(body, "\n"), []byte("wrong-key-wrong-key-wrong-key-32"))
	require.Error(t, err)
}
