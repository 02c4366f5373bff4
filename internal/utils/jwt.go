package utils

import (
	"errors" // Error construction
	"time"   // Token expiration

	"tabungan/internal/domain" // Session principal

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carries the session principal inside the JWT
type Claims struct {
	UserID               uint   `json:"uid"`           // User ID
	Username             string `json:"usr"`           // Username
	Role                 string `json:"role"`          // Role: admin or member
	StudentID            *uint  `json:"sid,omitempty"` // Linked student for members
	jwt.RegisteredClaims        // Standard JWT claims
}

// Principal extracts the session principal from the claims
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Username: c.Username, Role: c.Role, StudentID: c.StudentID}
}

// GenerateJWT creates a signed token for p that expires ttl after issuedAt
func GenerateJWT(p domain.Principal, key []byte, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    p.UserID,
		Username:  p.Username,
		Role:      p.Role,
		StudentID: p.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)), // Absolute expiry, never renewed
			IssuedAt:  jwt.NewNumericDate(issuedAt),          // Issued at
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(key)                             // Sign the token with the key
}

// ParseJWT verifies signature and expiry (against now) and returns the claims
func ParseJWT(tokenStr string, key []byte, now func() time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return key, nil // Return the key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid session token")
}
