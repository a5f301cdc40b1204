package models

import (
	"time"
)

// User defines an account record based on the 'users' table. Students and
// department heads share the table; HodID is set exactly when the role is hod.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"` // hashed, excluded from JSON
	Role       RoleType  `json:"role" db:"role"`
	HodID      *string   `json:"hodId,omitempty" db:"hod_id"`
	RollNumber *string   `json:"rollNumber,omitempty" db:"roll_number"`
	Department string    `json:"department,omitempty" db:"department"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// IsHead reports whether the account has the department-head role.
func (u *User) IsHead() bool {
	return u.Role == RoleHead
}
