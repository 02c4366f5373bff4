package utils

import (
	"strings"
	"testing"
	"time"

	"tabungan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec, err := NewSessionCodec("test-secret", 8*time.Hour)
	require.NoError(t, err)

	sid := uint(7)
	in := domain.Principal{UserID: 2, Username: "fauzi", Role: domain.RoleMember, StudentID: &sid}
	value, err := codec.Encode(in)
	require.NoError(t, err)
	assert.NotContains(t, value, "fauzi", "payload must be encrypted")

	out, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSessionCodec_Expiry(t *testing.T) {
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	codec, err := NewSessionCodec("test-secret", 8*time.Hour)
	require.NoError(t, err)
	codec.WithClock(func() time.Time { return now })

	value, err := codec.Encode(domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	now = now.Add(7*time.Hour + 59*time.Minute)
	_, err = codec.Decode(value)
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = codec.Decode(value)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionCodec_RejectsTamperingAndForeignKeys(t *testing.T) {
	codec, err := NewSessionCodec("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewSessionCodec("other-secret", time.Hour)
	require.NoError(t, err)

	value, err := codec.Encode(domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = other.Decode(value)
	assert.ErrorIs(t, err, ErrNoSession)

	flipped := []byte(value)
	mid := len(flipped) / 2
	if flipped[mid] == 'A' {
		flipped[mid] = 'B'
	} else {
		flipped[mid] = 'A'
	}
	_, err = codec.Decode(string(flipped))
	assert.ErrorIs(t, err, ErrNoSession)

	for _, junk := range []string{"", "not-base64!!", strings.Repeat("A", 10)} {
		_, err = codec.Decode(junk)
		assert.ErrorIs(t, err, ErrNoSession)
	}
}

func TestNewSessionCodec_EmptySecret(t *testing.T) {
	_, err := NewSessionCodec("", time.Hour)
	assert.Error(t, err)
}

func TestParseJWT_RejectsOtherAlgorithms(t *testing.T) {
	key := []byte("k")
	token, err := GenerateJWT(domain.Principal{UserID: 1, Role: domain.RoleAdmin}, key, time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, key, time.Now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	_, err = ParseJWT("eyJhbGciOiJub25lIn0.eyJ1aWQiOjF9.", key, time.Now)
	assert.Error(t, err)
}
