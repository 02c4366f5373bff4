// Package ledger holds the savings rules: balances are always derived from the
// append-only transaction log, and withdrawals may never overdraw a student.
package ledger

import (
	"context" // Request scoped cancellation
	"fmt"     // Error wrapping
	"strconv" // Amount parsing
	"strings" // String manipulation
	"time"    // Timestamps

	"tabungan/internal/domain" // Importing domain models
	"tabungan/internal/store"  // Persistence layer

	"github.com/sirupsen/logrus" // Structured logging
)

// Ledger records deposits and withdrawals against the store
type Ledger struct {
	store *store.Store
	now   func() time.Time
}

// New creates a Ledger using the wall clock
func New(s *store.Store) *Ledger {
	return &Ledger{store: s, now: time.Now}
}

// WithClock replaces the clock used to stamp new transactions
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// ParseAmount parses a positive integer amount, at most domain.MaxAmount, from user input
func ParseAmount(raw string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || amount <= 0 || amount > domain.MaxAmount {
		return 0, fmt.Errorf("%q: %w", raw, domain.ErrInvalidAmount)
	}
	return amount, nil
}

// NormalizeNote trims a note and bounds it to MaxNoteLength characters
func NormalizeNote(note string) string {
	note = strings.TrimSpace(note)
	if r := []rune(note); len(r) > domain.MaxNoteLength {
		note = string(r[:domain.MaxNoteLength])
	}
	return note
}

// GetStudent loads a student
func (l *Ledger) GetStudent(ctx context.Context, studentID uint) (*domain.Student, error) {
	return l.store.GetStudent(ctx, studentID)
}

// BalanceOf returns the sum of a student's transactions, 0 when there are none
func (l *Ledger) BalanceOf(ctx context.Context, studentID uint) (int64, error) {
	if _, err := l.store.GetStudent(ctx, studentID); err != nil {
		return 0, err
	}
	return l.store.Balance(ctx, studentID)
}

// RecordDeposit appends a positive entry for the student
func (l *Ledger) RecordDeposit(ctx context.Context, studentID uint, amount int64, note string, adminID *uint) (*domain.Transaction, error) {
	return l.record(ctx, studentID, amount, domain.TypeDeposit, note, adminID)
}

// RecordWithdrawal appends a negative entry for the student, refusing to overdraw.
// The balance check and the append share one transaction holding the student's row lock.
func (l *Ledger) RecordWithdrawal(ctx context.Context, studentID uint, amount int64, note string, adminID *uint) (*domain.Transaction, error) {
	return l.record(ctx, studentID, amount, domain.TypeWithdraw, note, adminID)
}

func (l *Ledger) record(ctx context.Context, studentID uint, amount int64, txType, note string, adminID *uint) (*domain.Transaction, error) {
	if amount <= 0 || amount > domain.MaxAmount {
		return nil, fmt.Errorf("%d: %w", amount, domain.ErrInvalidAmount)
	}
	entry := &domain.Transaction{
		StudentID: studentID,
		Amount:    amount,
		Type:      txType,
		Note:      NormalizeNote(note),
		AdminID:   adminID,
	}
	if txType == domain.TypeWithdraw {
		entry.Amount = -amount
	}
	fields := logrus.Fields{
		"student_id": studentID, // Student
		"amount":     amount,    // Requested amount
		"type":       txType,    // Transaction type
	}
	if adminID != nil {
		fields["admin_id"] = *adminID // Acting admin
	}

	err := l.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.LockStudent(ctx, studentID); err != nil {
			return err
		}
		balance, err := tx.Balance(ctx, studentID)
		if err != nil {
			return err
		}
		switch {
		case txType == domain.TypeWithdraw && amount > balance:
			return fmt.Errorf("withdraw %d from balance %d: %w", amount, balance, domain.ErrInsufficientBalance)
		case txType == domain.TypeDeposit && amount > domain.MaxAmount-balance:
			return fmt.Errorf("deposit %d onto balance %d exceeds %d: %w", amount, balance, domain.MaxAmount, domain.ErrInvalidAmount)
		}
		entry.CreatedAt = l.now().UTC()
		return tx.AppendTransaction(ctx, entry)
	})
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("Ledger entry rejected")
		return nil, err
	}
	logrus.WithFields(fields).WithField("transaction_id", entry.ID).Info("Ledger entry recorded")
	return entry, nil
}

// ListTransactions returns ledger rows matching f, newest first
func (l *Ledger) ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.TransactionView, error) {
	return l.store.ListTransactions(ctx, f)
}
