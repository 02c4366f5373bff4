// Package store is the persistence layer: the only owner of student, user and
// transaction rows.
package store

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // String manipulation

	"tabungan/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Locking clauses
)

// Store wraps a gorm handle, either the pool or an open transaction
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle
func (s *Store) DB() *gorm.DB { return s.db }

// WithTx runs fn inside a database transaction; fn's error rolls it back
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// notFound turns gorm's missing-row error into the domain one
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// CreateStudent inserts a student; name is required
func (s *Store) CreateStudent(ctx context.Context, st *domain.Student) error {
	st.Name = strings.TrimSpace(st.Name)
	st.Class = strings.TrimSpace(st.Class)
	st.Phone = strings.TrimSpace(st.Phone)
	if st.Name == "" {
		return fmt.Errorf("student name is required: %w", domain.ErrInvalidInput)
	}
	return s.conn(ctx).Create(st).Error
}

// GetStudent loads a student by id
func (s *Store) GetStudent(ctx context.Context, id uint) (*domain.Student, error) {
	var st domain.Student
	if err := s.conn(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err, "student")
	}
	return &st, nil
}

// LockStudent loads a student and holds a row lock until the surrounding
// transaction ends. Dialects without row locks (SQLite) skip the clause.
func (s *Store) LockStudent(ctx context.Context, id uint) (*domain.Student, error) {
	var st domain.Student
	if err := s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&st, id).Error; err != nil {
		return nil, notFound(err, "student")
	}
	return &st, nil
}

// DeleteStudent removes a student, its ledger and any user link
func (s *Store) DeleteStudent(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.LockStudent(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)
		if err := db.Where("student_id = ?", id).Delete(&domain.Transaction{}).Error; err != nil {
			return err
		}
		if err := db.Model(&domain.User{}).Where("student_id = ?", id).Update("student_id", nil).Error; err != nil {
			return err
		}
		return db.Delete(&domain.Student{}, id).Error
	})
}

// likeEscaper makes %, _ and the escape character itself literal in a LIKE pattern.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchStudents matches q case-insensitively against name, class and phone and
// returns each student with its derived balance, ordered by name
func (s *Store) SearchStudents(ctx context.Context, q string) ([]domain.StudentBalance, error) {
	like := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
	rows := []domain.StudentBalance{}
	err := s.conn(ctx).Model(&domain.Student{}).
		Select("students.id, students.name, students.class, students.phone, " +
			"COALESCE((SELECT SUM(t.amount) FROM transactions t WHERE t.student_id = students.id), 0) AS balance").
		Where("LOWER(students.name) LIKE ? ESCAPE '!' OR LOWER(COALESCE(students.class, '')) LIKE ? ESCAPE '!' OR LOWER(COALESCE(students.phone, '')) LIKE ? ESCAPE '!'", like, like, like).
		Order("students.name ASC, students.id ASC").
		Scan(&rows).Error
	return rows, err
}
