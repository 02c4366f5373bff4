package utils

import (
	"crypto/rand"     // Nonces
	"crypto/sha256"   // HKDF hash
	"encoding/base64" // Cookie-safe encoding
	"errors"          // Error construction
	"fmt"             // Error wrapping
	"io"              // Reading key material
	"time"            // Clock

	"tabungan/internal/domain" // Session principal

	"golang.org/x/crypto/chacha20poly1305" // Authenticated encryption
	"golang.org/x/crypto/hkdf"             // Key derivation
)

// ErrNoSession is returned for a missing, tampered or expired session
var ErrNoSession = errors.New("no valid session")

// SessionCodec turns a principal into an opaque cookie value and back.
// The value is a signed JWT sealed with XChaCha20-Poly1305; both keys derive from one secret.
type SessionCodec struct {
	signKey []byte
	sealKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionCodec derives the signing and sealing keys from secret
func NewSessionCodec(secret string, ttl time.Duration) (*SessionCodec, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	signKey, err := deriveKey(secret, "tsa-session-sign")
	if err != nil {
		return nil, err
	}
	sealKey, err := deriveKey(secret, "tsa-session-seal")
	if err != nil {
		return nil, err
	}
	return &SessionCodec{signKey: signKey, sealKey: sealKey, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the clock used for issuing and expiry checks
func (s *SessionCodec) WithClock(now func() time.Time) *SessionCodec {
	s.now = now
	return s
}

// TTL is the absolute lifetime of an issued session
func (s *SessionCodec) TTL() time.Duration { return s.ttl }

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// Encode issues a new session value for p
func (s *SessionCodec) Encode(p domain.Principal) (string, error) {
	token, err := GenerateJWT(p, s.signKey, s.now(), s.ttl)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(token)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a session value; any failure yields ErrNoSession
func (s *SessionCodec) Decode(value string) (domain.Principal, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return domain.Principal{}, ErrNoSession
	}
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return domain.Principal{}, err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return domain.Principal{}, ErrNoSession
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	token, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return domain.Principal{}, ErrNoSession
	}
	claims, err := ParseJWT(string(token), s.signKey, s.now)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return claims.Principal(), nil
}
