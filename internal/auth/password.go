package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for new hashes
	DefaultIterations = 600000

	// SaltLength is the number of salt characters embedded in each hash
	SaltLength = 30

	method    = "pbkdf2"
	digest    = "sha256"
	keyLength = sha256.Size

	// Upper bound accepted from stored hashes
	maxIterations = 10000000

	saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Hasher derives and checks salted PBKDF2-SHA256 password hashes encoded as
// "pbkdf2:sha256:<iterations>$<salt>$<hex digest>".
type Hasher struct {
	Iterations int
}

// NewHasher returns a hasher using the given iteration count, falling back to
// DefaultIterations for non-positive values.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{Iterations: iterations}
}

// Hash derives a new salted hash for plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt, err := randomSalt(SaltLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	sum := pbkdf2.Key([]byte(plaintext), []byte(salt), h.Iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%s:%d$%s$%s", method, digest, h.Iterations, salt, hex.EncodeToString(sum)), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes never match.
// Hashes written by the earlier bcrypt scheme are still accepted.
func (h *Hasher) Verify(plaintext, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 3 || parts[1] == "" {
		return false
	}
	iterations, ok := parseMethod(parts[0])
	if !ok {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 || len(want) > 64 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), []byte(parts[1]), iterations, len(want), sha256.New)
	return hmac.Equal(got, want)
}

// parseMethod accepts "pbkdf2:sha256" and "pbkdf2:sha256:<iterations>"
func parseMethod(s string) (int, bool) {
	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != method || fields[1] != digest {
		return 0, false
	}
	if len(fields) == 2 {
		return DefaultIterations, true
	}
	iterations, err := strconv.Atoi(fields[2])
	if err != nil || iterations <= 0 || iterations > maxIterations {
		return 0, false
	}
	return iterations, true
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func randomSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltChars[int(b)%len(saltChars)]
	}
	return string(buf), nil
}
