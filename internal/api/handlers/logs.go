package handlers

import (
	"net/http"
	"strconv"

	"staffdesk/internal/api/respond"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct {
	accessLogService *services.AccessLogService
}

func NewLogsHandler() *LogsHandler {
	return &LogsHandler{
		accessLogService: services.NewAccessLogService(),
	}
}

// GetAccessLogs returns audit entries newest first with limit/offset paging.
func (h *LogsHandler) GetAccessLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := h.accessLogService.List(limit, offset)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  entries,
		"total": total,
	})
}
