package services

import (
	"staffdesk/internal/config"
	"staffdesk/internal/models"

	"gorm.io/gorm"
)

// ReferenceService serves the lookup tables employees are built from and
// seeds them on first start.
type ReferenceService struct{}

func NewReferenceService() *ReferenceService {
	return &ReferenceService{}
}

func (s *ReferenceService) Departments() ([]models.Department, error) {
	var out []models.Department
	return out, models.DB.Order("name").Find(&out).Error
}

func (s *ReferenceService) Posts() ([]models.Post, error) {
	var out []models.Post
	return out, models.DB.Order("name").Find(&out).Error
}

func (s *ReferenceService) Statuses() ([]models.Status, error) {
	var out []models.Status
	return out, models.DB.Order("id").Find(&out).Error
}

func (s *ReferenceService) Genders() ([]models.Gender, error) {
	var out []models.Gender
	return out, models.DB.Order("id").Find(&out).Error
}

// EnsureReferenceData seeds the lookup tables when they are empty.
func (s *ReferenceService) EnsureReferenceData() error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		var count int64

		tx.Model(&models.Status{}).Count(&count)
		if count == 0 {
			statuses := []models.Status{
				{Name: "Active", Active: true},
				{Name: "Disabled", Active: false},
			}
			if err := tx.Create(&statuses).Error; err != nil {
				return err
			}
		}

		tx.Model(&models.Gender{}).Count(&count)
		if count == 0 {
			genders := []models.Gender{
				{Name: "Male"},
				{Name: "Female"},
			}
			if err := tx.Create(&genders).Error; err != nil {
				return err
			}
		}

		tx.Model(&models.Post{}).Count(&count)
		if count == 0 {
			posts := []models.Post{
				{Name: "Administrator", Permission: string(models.PermissionAdmin)},
				{Name: "Department Head", Permission: string(models.PermissionDepartmentHead)},
				{Name: "Specialist", Permission: string(models.PermissionDefault)},
			}
			if err := tx.Create(&posts).Error; err != nil {
				return err
			}
		}

		tx.Model(&models.Department{}).Count(&count)
		if count == 0 {
			if err := tx.Create(&models.Department{Name: "General"}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// EnsureDefaultAdmin creates the configured admin account when no employees
// exist yet.
func EnsureDefaultAdmin(cfg *config.Config, auth *AuthService) error {
	var count int64
	models.DB.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		return nil
	}

	if cfg.DefaultAdmin.Login == "" || cfg.DefaultAdmin.Password == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.DefaultAdmin.Password)
	if err != nil {
		return err
	}

	var post models.Post
	if err := models.DB.Where("permission = ?", string(models.PermissionAdmin)).First(&post).Error; err != nil {
		return err
	}
	var status models.Status
	if err := models.DB.Where("active = ?", true).First(&status).Error; err != nil {
		return err
	}
	var dept models.Department
	if err := models.DB.First(&dept).Error; err != nil {
		return err
	}
	var gender models.Gender
	if err := models.DB.First(&gender).Error; err != nil {
		return err
	}

	admin := &models.Employee{
		Login:        cfg.DefaultAdmin.Login,
		Email:        cfg.DefaultAdmin.Email,
		PasswordHash: hash,
		LastName:     "Administrator",
		FirstName:    "Default",
		PostID:       post.ID,
		StatusID:     status.ID,
		DepartmentID: dept.ID,
		GenderID:     gender.ID,
	}
	return models.DB.Create(admin).Error
}
