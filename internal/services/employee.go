package services

import (
	"errors"
	"strings"

	"staffdesk/internal/config"
	"staffdesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeService struct {
	auth *AuthService
}

func NewEmployeeService(cfg *config.Config) *EmployeeService {
	return &EmployeeService{
		auth: NewAuthService(cfg),
	}
}

type CreateEmployeeData struct {
	Login        string
	Email        string
	Password     string
	LastName     string
	FirstName    string
	MiddleName   string
	Phone        string
	PostID       uint
	StatusID     uint
	DepartmentID uint
	GenderID     uint
}

type UpdateEmployeeData struct {
	Email        *string
	LastName     *string
	FirstName    *string
	MiddleName   *string
	Phone        *string
	PostID       *uint
	StatusID     *uint
	DepartmentID *uint
	GenderID     *uint
}

// ListEmployees returns employees, optionally filtered by department and
// sorted by a whitelisted column.
func (s *EmployeeService) ListEmployees(departmentID uint, sortBy string) ([]models.Employee, error) {
	q := employeeQuery(models.DB)
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}

	switch sortBy {
	case "login", "email", "last_name", "created_at":
		q = q.Order(sortBy)
	default:
		q = q.Order("last_name, first_name")
	}

	var out []models.Employee
	return out, q.Find(&out).Error
}

func (s *EmployeeService) GetEmployee(id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	err := employeeQuery(models.DB).First(&emp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (s *EmployeeService) CreateEmployee(data *CreateEmployeeData) (*models.Employee, error) {
	if data.Login == "" || data.Email == "" {
		return nil, ErrInvalidArgument
	}

	var existing models.Employee
	err := models.DB.
		Where("login = ? OR email = ?", data.Login, data.Email).
		First(&existing).Error
	if err == nil {
		return nil, ErrEmployeeExists
	}

	hash, err := s.auth.HashPassword(data.Password)
	if err != nil {
		return nil, err
	}

	emp := &models.Employee{
		Login:        strings.TrimSpace(data.Login),
		Email:        strings.TrimSpace(data.Email),
		PasswordHash: hash,
		LastName:     data.LastName,
		FirstName:    data.FirstName,
		MiddleName:   data.MiddleName,
		Phone:        data.Phone,
		PostID:       data.PostID,
		StatusID:     data.StatusID,
		DepartmentID: data.DepartmentID,
		GenderID:     data.GenderID,
	}

	if err := models.DB.Create(emp).Error; err != nil {
		return nil, err
	}

	return s.GetEmployee(emp.ID)
}

func (s *EmployeeService) UpdateEmployee(id uuid.UUID, data *UpdateEmployeeData) (*models.Employee, error) {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	if data.Email != nil && *data.Email != emp.Email {
		var existing models.Employee
		if err := models.DB.Where("email = ? AND id != ?", *data.Email, id).First(&existing).Error; err == nil {
			return nil, ErrEmployeeExists
		}
		emp.Email = *data.Email
	}
	if data.LastName != nil {
		emp.LastName = *data.LastName
	}
	if data.FirstName != nil {
		emp.FirstName = *data.FirstName
	}
	if data.MiddleName != nil {
		emp.MiddleName = *data.MiddleName
	}
	if data.Phone != nil {
		emp.Phone = *data.Phone
	}
	if data.PostID != nil {
		emp.PostID = *data.PostID
	}
	if data.StatusID != nil {
		emp.StatusID = *data.StatusID
	}
	if data.DepartmentID != nil {
		emp.DepartmentID = *data.DepartmentID
	}
	if data.GenderID != nil {
		emp.GenderID = *data.GenderID
	}

	if err := models.DB.Save(emp).Error; err != nil {
		return nil, err
	}

	return s.GetEmployee(id)
}

// UpdatePassword sets a new password and invalidates the employee's sessions.
func (s *EmployeeService) UpdatePassword(id uuid.UUID, newPassword string) error {
	if _, err := s.GetEmployee(id); err != nil {
		return err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
			return err
		}
		return s.auth.InvalidateSessions(tx, id)
	})
}

// DeleteEmployee removes an employee unless other records still reference
// them. Sessions and reset tokens go with the account.
func (s *EmployeeService) DeleteEmployee(id uuid.UUID) error {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return err
	}

	var taskCount int64
	models.DB.Model(&models.Task{}).Where("executor_id = ?", id).Count(&taskCount)
	if taskCount > 0 {
		return ErrEmployeeReferenced
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(emp).Error
	})
}
