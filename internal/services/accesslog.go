package services

import (
	"staffdesk/internal/logs"
	"staffdesk/internal/models"

	"github.com/google/uuid"
)

// Audit actions recorded by the auth core.
const (
	ActionLogin        = "login"
	ActionLogout       = "logout"
	ActionVerify       = "verify"
	ActionResetRequest = "reset_request"
	ActionResetConfirm = "reset_confirm"
)

type AccessLogService struct{}

func NewAccessLogService() *AccessLogService {
	return &AccessLogService{}
}

// Record appends an audit entry. A write failure must never surface to the
// request path, so it is only reported to the operational log.
func (s *AccessLogService) Record(actor *uuid.UUID, action string, success bool, detail, ip string) {
	entry := &models.AccessLog{
		EmployeeID: actor,
		Action:     action,
		Success:    success,
		Detail:     detail,
		IPAddress:  ip,
	}
	if err := models.DB.Create(entry).Error; err != nil {
		logs.Logger.WithError(err).WithField("action", action).Error("failed to write access log entry")
	}
}

// List returns audit entries newest first, with total count for paging.
func (s *AccessLogService) List(limit, offset int) ([]models.AccessLog, int64, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := models.DB.Model(&models.AccessLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AccessLog
	err := models.DB.Preload("Employee").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
