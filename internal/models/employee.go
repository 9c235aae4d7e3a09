package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is the closed set of access tiers. Posts store a string label;
// it is resolved into one of these values at the data-access boundary.
type Permission string

const (
	PermissionAdmin          Permission = "administrator"
	PermissionDepartmentHead Permission = "department_head"
	PermissionDefault        Permission = "employee"
)

// ParsePermission maps a stored post permission label to the closed set.
// Unknown labels fall back to the default tier.
func ParsePermission(label string) Permission {
	switch label {
	case string(PermissionAdmin):
		return PermissionAdmin
	case string(PermissionDepartmentHead):
		return PermissionDepartmentHead
	default:
		return PermissionDefault
	}
}

type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	Permission string    `json:"permission" gorm:"type:varchar(50);not null;default:'employee'"`
	CreatedAt  time.Time `json:"created_at"`
}

type Status struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Active bool   `json:"active" gorm:"not null;default:true"`
}

type Gender struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
}

type Employee struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Login        string    `json:"login" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(200);not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(200);not null"`
	MiddleName   string    `json:"middle_name" gorm:"type:varchar(200)"`
	Phone        string    `json:"phone" gorm:"type:varchar(50)"`

	PostID       uint       `json:"post_id" gorm:"not null;index"`
	Post         Post       `json:"post,omitempty" gorm:"foreignKey:PostID"`
	StatusID     uint       `json:"status_id" gorm:"not null;index"`
	Status       Status     `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	DepartmentID uint       `json:"department_id" gorm:"not null;index"`
	Department   Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	GenderID     uint       `json:"gender_id" gorm:"index"`
	Gender       Gender     `json:"gender,omitempty" gorm:"foreignKey:GenderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// PermissionLevel resolves the employee's access tier from the loaded post.
func (e *Employee) PermissionLevel() Permission {
	return ParsePermission(e.Post.Permission)
}

// IsActive reports whether the employee's status allows authentication.
func (e *Employee) IsActive() bool {
	return e.Status.Active
}
