package store

import (
	"context" // Request scoped cancellation
	"time"    // Time ranges

	"tabungan/internal/domain" // Importing domain models
)

// AppendTransaction inserts a ledger row. Rows are never updated afterwards.
func (s *Store) AppendTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.conn(ctx).Omit("Student", "Admin").Create(t).Error
}

// Balance sums the signed amounts of a student's transactions
func (s *Store) Balance(ctx context.Context, studentID uint) (int64, error) {
	var balance int64
	err := s.conn(ctx).Model(&domain.Transaction{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	return balance, err
}

// ListTransactions returns matching rows newest first, ties broken by id
func (s *Store) ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.TransactionView, error) {
	query := s.conn(ctx).Table("transactions AS t").
		Select("t.id, t.student_id, s.name AS student_name, t.amount, t.type, t.note, " +
			"t.admin_id, u.username AS admin_username, t.created_at").
		Joins("JOIN students s ON s.id = t.student_id").
		Joins("LEFT JOIN users u ON u.id = t.admin_id")
	if f.StudentID != nil {
		query = query.Where("t.student_id = ?", *f.StudentID) // Filter by student
	}
	if f.From != nil {
		query = query.Where("t.created_at >= ?", f.From.UTC()) // Inclusive lower bound
	}
	if f.To != nil {
		query = query.Where("t.created_at <= ?", f.To.UTC()) // Inclusive upper bound
	}
	rows := []domain.TransactionView{}
	err := query.Order("t.created_at DESC, t.id DESC").Scan(&rows).Error
	return rows, err
}

// Stats aggregates dashboard figures; the day window is [dayStart, dayEnd)
func (s *Store) Stats(ctx context.Context, dayStart, dayEnd time.Time) (domain.AdminStats, error) {
	var stats domain.AdminStats
	db := s.conn(ctx)
	if err := db.Model(&domain.Student{}).Count(&stats.Students).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&domain.Transaction{}).Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalBalance).Error; err != nil {
		return stats, err
	}
	var today struct {
		Count       int64
		Deposits    int64
		Withdrawals int64
	}
	err := db.Model(&domain.Transaction{}).
		Select("COUNT(*) AS count, "+
			"COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS deposits, "+
			"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS withdrawals").
		Where("created_at >= ? AND created_at < ?", dayStart.UTC(), dayEnd.UTC()).
		Scan(&today).Error
	if err != nil {
		return stats, err
	}
	stats.TodayCount = today.Count
	stats.TodayDeposits = today.Deposits
	stats.TodayWithdrawal = today.Withdrawals
	return stats, nil
}
