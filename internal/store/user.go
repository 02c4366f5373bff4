package store

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // String manipulation

	"tabungan/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// NormalizeUsername is the canonical stored form of a username
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// GetUserByUsername loads a login by its username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.conn(ctx).Where("username = ?", NormalizeUsername(username)).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// GetLinkedStudent returns the student a user is linked to
func (s *Store) GetLinkedStudent(ctx context.Context, userID uint) (*domain.Student, error) {
	var u domain.User
	if err := s.conn(ctx).First(&u, userID).Error; err != nil {
		return nil, notFound(err, "user")
	}
	if u.StudentID == nil {
		return nil, fmt.Errorf("user %d has no linked student: %w", userID, domain.ErrNotFound)
	}
	return s.GetStudent(ctx, *u.StudentID)
}

// CreateAccount inserts a login. Members must reference an existing student,
// admins must not reference one.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash, role string, studentID *uint) (*domain.User, error) {
	username = NormalizeUsername(username)
	if username == "" || passwordHash == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidInput)
	}
	if role == domain.RoleAdmin && studentID != nil {
		return nil, fmt.Errorf("admin accounts cannot link a student: %w", domain.ErrInvalidInput)
	}
	if role == domain.RoleMember && studentID == nil {
		return nil, fmt.Errorf("member accounts need a student: %w", domain.ErrInvalidInput)
	}
	u := &domain.User{Username: username, PasswordHash: passwordHash, Role: role, StudentID: studentID}
	err := s.WithTx(ctx, func(tx *Store) error {
		if studentID != nil {
			if _, err := tx.GetStudent(ctx, *studentID); err != nil {
				return err
			}
		}
		var existing domain.User
		err := tx.conn(ctx).Where("username = ?", username).First(&existing).Error
		if err == nil {
			return fmt.Errorf("username %q: %w", username, domain.ErrDuplicate)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.conn(ctx).Omit("Student").Create(u).Error; err != nil {
			if isUniqueConstraintError(err) { // lost a race with another insert
				return fmt.Errorf("username %q: %w", username, domain.ErrDuplicate)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "unique constraint")
}
