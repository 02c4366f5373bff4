package domain

import "time"

// Transaction types, redundant with the amount sign
const (
	TypeDeposit  = "DEPOSIT"
	TypeWithdraw = "WITHDRAW"
)

// MaxNoteLength bounds the free-text note on a transaction
const MaxNoteLength = 200

// MaxAmount bounds both a single entry and a student's balance
const MaxAmount int64 = 1_000_000_000_000

// Transaction Model. Rows are append-only: never updated, only removed by student cascade.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                    // Primary key
	StudentID uint      `gorm:"not null;index" json:"student_id"`                        // Owning student
	Student   *Student  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Belongs-to relation
	Amount    int64     `gorm:"not null" json:"amount"`                                  // Signed amount
	Type      string    `gorm:"size:16;not null" json:"type"`                            // DEPOSIT or WITHDRAW
	Note      string    `gorm:"size:200" json:"note"`                                    // Optional note
	AdminID   *uint     `gorm:"index" json:"admin_id"`                                   // Recording admin
	Admin     *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Belongs-to relation
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`                        // Server-assigned timestamp
}

// TransactionView is a ledger row joined with display names
type TransactionView struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"student_id"`
	StudentName   string    `json:"student_name"`
	Amount        int64     `json:"amount"`
	Type          string    `json:"type"`
	Note          string    `json:"note"`
	AdminID       *uint     `json:"admin_id"`
	AdminUsername *string   `json:"admin_username"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionFilter selects ledger rows. Bounds are inclusive; nil means unbounded.
type TransactionFilter struct {
	StudentID *uint
	From      *time.Time
	To        *time.Time
}
