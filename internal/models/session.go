package models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a live bearer token to an employee. Login replaces any
// existing row for the employee, so at most one session is live per account.
type Session struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Token      string    `json:"token" gorm:"type:varchar(500);uniqueIndex;not null"`
	EmployeeID uuid.UUID `json:"employee_id" gorm:"type:char(36);not null;index"`
	Employee   Employee  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// PasswordResetToken is a single-use recovery credential. Issuing a new one
// removes all prior rows for the employee; confirm consumes the row.
type PasswordResetToken struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Token      string    `json:"token" gorm:"type:varchar(255);uniqueIndex;not null"`
	EmployeeID uuid.UUID `json:"employee_id" gorm:"type:char(36);not null;index"`
	Employee   Employee  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
