package handlers

import (
	"net/http"
	"strconv"
	"time"

	"staffdesk/internal/api/middleware"
	"staffdesk/internal/api/respond"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(),
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	ExecutorID  string     `json:"executor_id" binding:"required"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExecutorID  string     `json:"executor_id"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	var filter services.TaskFilter

	if v := c.Query("project_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respond.BadRequest(c, "invalid project_id")
			return
		}
		filter.ProjectID = uint(parsed)
	}
	if v := c.Query("executor_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			respond.BadRequest(c, "invalid executor_id")
			return
		}
		filter.ExecutorID = parsed
	}
	filter.Status = c.Query("status")

	tasks, err := h.taskService.ListTasks(filter, c.Query("sort"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	executorID, err := uuid.Parse(req.ExecutorID)
	if err != nil {
		respond.BadRequest(c, "invalid executor_id")
		return
	}

	task, err := h.taskService.CreateTask(&services.TaskData{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		ExecutorID:  executorID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	data := &services.TaskData{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.ExecutorID != "" {
		executorID, err := uuid.Parse(req.ExecutorID)
		if err != nil {
			respond.BadRequest(c, "invalid executor_id")
			return
		}
		data.ExecutorID = executorID
	}

	task, err := h.taskService.UpdateTask(id, data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateStatus changes a task's status. The service enforces that only the
// assigned executor (or an administrator) may do this.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "status is required")
		return
	}

	task, err := h.taskService.UpdateStatus(id, req.Status, middleware.CurrentEmployee(c))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
