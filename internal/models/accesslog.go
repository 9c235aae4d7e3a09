package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessLog is an append-only audit record of auth events. EmployeeID is nil
// when the actor could not be resolved (bad credentials, malformed token).
type AccessLog struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	EmployeeID *uuid.UUID `json:"employee_id" gorm:"type:char(36);index"`
	Employee   *Employee  `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Action     string     `json:"action" gorm:"type:varchar(50);not null"` // login, logout, verify, reset_request, reset_confirm
	Success    bool       `json:"success" gorm:"not null"`
	Detail     string     `json:"detail" gorm:"type:text"`
	IPAddress  string     `json:"ip_address" gorm:"type:varchar(45)"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
}
