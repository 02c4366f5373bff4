package ledger

import (
	"context"
	"fmt"
	"time"

	"tabungan/internal/domain"
)

const dateLayout = "2006-01-02"

// Report is a printable extract of the ledger
type Report struct {
	Student       *domain.Student          `json:"student"`
	Transactions  []domain.TransactionView `json:"transactions"`
	TotalDeposit  int64                    `json:"total_deposit"`
	TotalWithdraw int64                    `json:"total_withdraw"`
	Net           int64                    `json:"net"`
}

// ParseDateFilter turns YYYY-MM-DD bounds in loc into an inclusive time range.
// The upper bound covers the whole of its day. Empty strings leave a side open.
func ParseDateFilter(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var lo, hi *time.Time
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("from date %q: %w", from, domain.ErrInvalidInput)
		}
		lo = &d
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("to date %q: %w", to, domain.ErrInvalidInput)
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		hi = &end
	}
	return lo, hi, nil
}

// Report lists the filtered ledger together with its totals
func (l *Ledger) Report(ctx context.Context, f domain.TransactionFilter) (*Report, error) {
	r := &Report{}
	if f.StudentID != nil {
		st, err := l.store.GetStudent(ctx, *f.StudentID)
		if err != nil {
			return nil, err
		}
		r.Student = st
	}
	rows, err := l.store.ListTransactions(ctx, f)
	if err != nil {
		return nil, err
	}
	r.Transactions = rows
	for _, t := range rows {
		if t.Amount > 0 {
			r.TotalDeposit += t.Amount
		} else {
			r.TotalWithdraw -= t.Amount
		}
	}
	r.Net = r.TotalDeposit - r.TotalWithdraw
	return r, nil
}

// Stats computes the dashboard figures, with "today" taken in loc
func (l *Ledger) Stats(ctx context.Context, loc *time.Location) (domain.AdminStats, error) {
	now := l.now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return l.store.Stats(ctx, start, start.AddDate(0, 0, 1))
}
