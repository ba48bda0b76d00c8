package models

// Role represents user role types
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleOperator Role = "Operator"
	RoleInvestor Role = "Investor"
)

// ValidRole reports whether r is one of the three recognized roles.
// Comparison is exact-case: "admin" is not a role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleInvestor:
		return true
	}
	return false
}

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Nickname     string `gorm:"size:100" json:"nickname"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
	Country      string `gorm:"size:100" json:"country"`
	State        string `gorm:"size:100" json:"state"`
	City         string `gorm:"size:100" json:"city"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
