package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null;index"`
	Description  string     `json:"description" gorm:"type:text"`
	DepartmentID uint       `json:"department_id" gorm:"index"`
	Department   Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Deadline     *time.Time `json:"deadline"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Task statuses form a small fixed set; transitions are restricted to the
// assigned executor (admins may override).
const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(50);not null;default:'open'"`
	ProjectID   uint       `json:"project_id" gorm:"not null;index"`
	Project     Project    `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	ExecutorID  uuid.UUID  `json:"executor_id" gorm:"type:char(36);not null;index"`
	Executor    Employee   `json:"executor,omitempty" gorm:"foreignKey:ExecutorID"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
