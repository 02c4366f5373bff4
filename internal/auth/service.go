// Package auth verifies credentials and provisions logins.
package auth

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"tabungan/internal/domain" // Importing domain models
	"tabungan/internal/store"  // Persistence layer

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// MinPasswordLength is the shortest password CreateAccount accepts
const MinPasswordLength = 6

// Service authenticates users against the store
type Service struct {
	store *store.Store
	cost  int
}

// NewService creates an auth service hashing with bcrypt.DefaultCost
func NewService(s *store.Store) *Service {
	return &Service{store: s, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost for new hashes
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Login checks username and password and returns the session principal
func (s *Service) Login(ctx context.Context, username, password string) (domain.Principal, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		logrus.WithField("username", username).Warn("Login failed: unknown user")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Principal{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("username", user.Username).Warn("Login failed: wrong password")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,   // User ID
		"role":    user.Role, // Role
	}).Info("Login succeeded")
	return domain.PrincipalOf(user), nil
}

// CreateAccount hashes password and stores a new login
func (s *Service) CreateAccount(ctx context.Context, username, password, role string, studentID *uint) (*domain.User, error) {
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password shorter than %d characters: %w", MinPasswordLength, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	user, err := s.store.CreateAccount(ctx, username, string(hash), role, studentID)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // New user
		"username": user.Username, // Username
		"role":     user.Role,     // Role
	}).Info("Account created")
	return user, nil
}
