package services

import (
	"errors"
	"time"

	"staffdesk/internal/config"
	"staffdesk/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns credential hashing, login/verify/logout and the session
// lifecycle. A token is only valid while its session row exists, so logout
// and password changes revoke access immediately.
type AuthService struct {
	cfg    *config.Config
	codec  *TokenCodec
	access *AccessLogService
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:    cfg,
		codec:  NewTokenCodec(cfg),
		access: NewAccessLogService(),
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidArgument
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func employeeQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Post").Preload("Status").Preload("Department").Preload("Gender")
}

// Login authenticates by login or email and opens a new session. Any prior
// session for the employee is removed in the same transaction, so at most one
// token verifies at a time.
func (s *AuthService) Login(login, password, ip string) (string, *models.Employee, error) {
	var emp models.Employee
	err := employeeQuery(models.DB).
		Where("login = ? OR email = ?", login, login).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.access.Record(nil, ActionLogin, false, "unknown login "+login, ip)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.VerifyPassword(emp.PasswordHash, password) {
		s.access.Record(&emp.ID, ActionLogin, false, "password mismatch", ip)
		return "", nil, ErrInvalidCredentials
	}

	if !emp.IsActive() {
		s.access.Record(&emp.ID, ActionLogin, false, "inactive account", ip)
		return "", nil, ErrInactiveAccount
	}

	token, err := s.codec.Issue(emp.ID)
	if err != nil {
		return "", nil, err
	}

	session := &models.Session{
		Token:      token,
		EmployeeID: emp.ID,
		ExpiresAt:  time.Now().Add(s.cfg.Security.SessionTTL()),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return "", nil, err
	}

	s.access.Record(&emp.ID, ActionLogin, true, "", ip)
	return token, &emp, nil
}

// Verify resolves a bearer token to its employee. The signature check rejects
// tampered tokens before any store access; the session lookup makes revoked
// tokens fail even though they carry no expiry of their own.
func (s *AuthService) Verify(token, ip string) (*models.Employee, error) {
	employeeID, err := s.codec.Parse(token)
	if err != nil {
		s.access.Record(nil, ActionVerify, false, "malformed token", ip)
		return nil, ErrInvalidToken
	}

	var session models.Session
	err = models.DB.
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.access.Record(&employeeID, ActionVerify, false, "no live session", ip)
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var emp models.Employee
	err = employeeQuery(models.DB).First(&emp, "id = ?", session.EmployeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.access.Record(&employeeID, ActionVerify, false, "employee missing", ip)
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !emp.IsActive() {
		s.access.Record(&emp.ID, ActionVerify, false, "inactive account", ip)
		return nil, ErrInactiveAccount
	}

	s.access.Record(&emp.ID, ActionVerify, true, "", ip)
	return &emp, nil
}

// Logout verifies the token and removes the employee's session. A concurrent
// logout may have already removed it; that surfaces as ErrSessionNotFound.
func (s *AuthService) Logout(token, ip string) error {
	emp, err := s.Verify(token, ip)
	if err != nil {
		return err
	}

	res := models.DB.Where("employee_id = ?", emp.ID).Delete(&models.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.access.Record(&emp.ID, ActionLogout, false, "no session at delete time", ip)
		return ErrSessionNotFound
	}

	s.access.Record(&emp.ID, ActionLogout, true, "", ip)
	return nil
}

// InvalidateSessions removes every session for the employee, forcing re-login.
func (s *AuthService) InvalidateSessions(tx *gorm.DB, employeeID uuid.UUID) error {
	return tx.Where("employee_id = ?", employeeID).Delete(&models.Session{}).Error
}

// DeleteExpiredSessions removes expired session rows. Expiry is otherwise
// checked lazily on lookup, so this is opportunistic cleanup only.
func (s *AuthService) DeleteExpiredSessions() error {
	return models.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
