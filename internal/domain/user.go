package domain

// Roles a login can carry
const (
	RoleAdmin  = "admin"  // Manages students and records transactions
	RoleMember = "member" // Views the linked student's savings
)

// User Model
type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`                                    // Primary key
	Username     string   `gorm:"size:64;uniqueIndex;not null" json:"username"`            // Unique username
	PasswordHash string   `gorm:"not null" json:"-"`                                       // Bcrypt hash
	Role         string   `gorm:"size:16;not null;default:member" json:"role"`             // Role: admin or member
	StudentID    *uint    `gorm:"index" json:"student_id"`                                 // Linked student for members
	Student      *Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Belongs-to relation
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

// Principal is the authenticated identity carried by a session
type Principal struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	StudentID *uint  `json:"student_id"`
}

// PrincipalOf builds the session principal for a user
func PrincipalOf(u *User) Principal {
	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role, StudentID: u.StudentID}
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
