package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"staffdesk/internal/config"
	"staffdesk/internal/models"

	"gorm.io/gorm"
)

// PasswordResetService issues and consumes single-use recovery tokens.
type PasswordResetService struct {
	cfg    *config.Config
	auth   *AuthService
	access *AccessLogService
}

func NewPasswordResetService(cfg *config.Config, auth *AuthService) *PasswordResetService {
	return &PasswordResetService{
		cfg:    cfg,
		auth:   auth,
		access: NewAccessLogService(),
	}
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Request issues a fresh reset token for the employee behind the email.
// All prior tokens for that employee are invalidated so only the newest
// confirms. Delivery of the token is the caller's concern.
//
// The NotFound on an unknown email reveals whether an account exists.
func (s *PasswordResetService) Request(email, ip string) (*models.PasswordResetToken, error) {
	var emp models.Employee
	err := models.DB.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.access.Record(nil, ActionResetRequest, false, "unknown email "+email, ip)
			return nil, ErrNotFound
		}
		return nil, err
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, err
	}

	reset := &models.PasswordResetToken{
		Token:      token,
		EmployeeID: emp.ID,
		ExpiresAt:  time.Now().Add(s.cfg.Security.ResetTokenTTL()),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
	if err != nil {
		return nil, err
	}

	s.access.Record(&emp.ID, ActionResetRequest, true, "", ip)
	return reset, nil
}

// Confirm consumes a reset token and sets the new password. Expired rows are
// cleaned up on sight. A successful confirm removes every live session for
// the employee: a password change always forces re-login.
func (s *PasswordResetService) Confirm(token, newPassword, ip string) error {
	var reset models.PasswordResetToken
	err := models.DB.Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.access.Record(nil, ActionResetConfirm, false, "unknown reset token", ip)
			return ErrInvalidToken
		}
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		models.DB.Delete(&reset)
		s.access.Record(&reset.EmployeeID, ActionResetConfirm, false, "token expired", ip)
		return ErrTokenExpired
	}

	if len(newPassword) < s.cfg.Security.MinPassword() {
		s.access.Record(&reset.EmployeeID, ActionResetConfirm, false, "password policy violation", ip)
		return ErrInvalidArgument
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("id = ?", reset.EmployeeID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		if err := tx.Delete(&reset).Error; err != nil {
			return err
		}
		return s.auth.InvalidateSessions(tx, reset.EmployeeID)
	})
	if err != nil {
		return err
	}

	s.access.Record(&reset.EmployeeID, ActionResetConfirm, true, "", ip)
	return nil
}
