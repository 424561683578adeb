package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(1000)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "pbkdf2:sha256:1000$"))

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 3)
	assert.Len(t, parts[1], SaltLength)

	assert.True(t, h.Verify("s3cret", hash))
	assert.False(t, h.Verify("s3cret!", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(1000)

	a, err := h.Hash("mellon")
	require.NoError(t, err)
	b, err := h.Hash("mellon")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("mellon", a))
	assert.True(t, h.Verify("mellon", b))
}

func TestVerifyUsesEmbeddedIterations(t *testing.T) {
	old := NewHasher(1000)
	hash, err := old.Hash("shire")
	require.NoError(t, err)

	assert.True(t, NewHasher(2000).Verify("shire", hash))
}

func TestVerifyDistinctPasswords(t *testing.T) {
	h := NewHasher(1000)
	pairs := [][2]string{
		{"gandalf", "saruman"},
		{"a", "b"},
		{"password", "Password"},
		{"unicode-ü", "unicode-u"},
	}
	for _, p := range pairs {
		hash, err := h.Hash(p[1])
		require.NoError(t, err)
		assert.False(t, h.Verify(p[0], hash), "%q must not verify against hash of %q", p[0], p[1])
	}
}

func TestVerifyMalformedHashes(t *testing.T) {
	h := NewHasher(1000)
	malformed := []string{
		"",
		"plaintext",
		"pbkdf2:sha256:1000$salt",
		"pbkdf2:sha256:1000$$abcd",
		"pbkdf2:sha1:1000$salt$abcd",
		"scrypt:sha256:1000$salt$abcd",
		"pbkdf2:sha256:-5$salt$abcd",
		"pbkdf2:sha256:lots$salt$abcd",
		"pbkdf2:sha256:1000$salt$not-hex",
		"pbkdf2:sha256:1000$salt$",
		"pbkdf2:sha256:99999999999$salt$abcd",
		"$2b$10$tooshort",
	}
	for _, hash := range malformed {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("anything", hash), hash)
		})
	}
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old-school"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewHasher(1000)
	assert.True(t, h.Verify("old-school", string(legacy)))
	assert.False(t, h.Verify("new-school", string(legacy)))
}

func TestNewHasherDefaults(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewHasher(0).Iterations)
	assert.Equal(t, 1234, NewHasher(1234).Iterations)
}
