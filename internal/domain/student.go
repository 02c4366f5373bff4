package domain

// Student Model
type Student struct {
	ID    uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name  string `gorm:"size:255;not null" json:"name"` // Full name
	Class string `gorm:"size:64" json:"class"`          // Class label
	Phone string `gorm:"size:32" json:"phone"`          // Contact phone
}

// StudentBalance is a student together with its derived balance
type StudentBalance struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Class   string `json:"class"`
	Phone   string `json:"phone"`
	Balance int64  `json:"balance"`
}

// AdminStats summarises the ledger for the admin dashboard
type AdminStats struct {
	Students        int64 `json:"students"`
	TotalBalance    int64 `json:"total_balance"`
	TodayCount      int64 `json:"today_count"`
	TodayDeposits   int64 `json:"today_deposits"`
	TodayWithdrawal int64 `json:"today_withdrawals"`
}
