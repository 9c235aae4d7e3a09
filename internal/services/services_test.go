package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"staffdesk/internal/config"
	"staffdesk/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a temporary sqlite database with seeded reference
// data and returns the config used to build services against it.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	testDBPath := fmt.Sprintf("%s/staffdesk_test_%d.db", os.TempDir(), time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret: "test-secret-key-for-testing-only",
			Issuer: "staffdesk-test",
		},
		Security: config.SecurityConfig{
			BcryptCost:         4,
			SessionLifetime:    "24h",
			ResetTokenLifetime: "15m",
			MinPasswordLength:  8,
		},
	}

	require.NoError(t, models.InitDB(cfg))
	require.NoError(t, NewReferenceService().EnsureReferenceData())

	t.Cleanup(func() {
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		os.Remove(testDBPath)
		models.DB = nil
	})

	return cfg
}

// createTestEmployee creates an employee with the given permission tier.
func createTestEmployee(t *testing.T, cfg *config.Config, login, password string, perm models.Permission, active bool) *models.Employee {
	t.Helper()

	auth := NewAuthService(cfg)
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	var post models.Post
	require.NoError(t, models.DB.Where("permission = ?", string(perm)).First(&post).Error)
	var status models.Status
	require.NoError(t, models.DB.Where("active = ?", active).First(&status).Error)
	var dept models.Department
	require.NoError(t, models.DB.First(&dept).Error)
	var gender models.Gender
	require.NoError(t, models.DB.First(&gender).Error)

	emp := &models.Employee{
		Login:        login,
		Email:        login + "@example.com",
		PasswordHash: hash,
		LastName:     "Testov",
		FirstName:    "Test",
		PostID:       post.ID,
		StatusID:     status.ID,
		DepartmentID: dept.ID,
		GenderID:     gender.ID,
	}
	require.NoError(t, models.DB.Create(emp).Error)

	var loaded models.Employee
	require.NoError(t, employeeQuery(models.DB).First(&loaded, "id = ?", emp.ID).Error)
	return &loaded
}
