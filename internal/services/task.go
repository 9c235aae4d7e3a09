package services

import (
	"errors"
	"time"

	"staffdesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct{}

func NewTaskService() *TaskService {
	return &TaskService{}
}

type TaskData struct {
	Title       string
	Description string
	ProjectID   uint
	ExecutorID  uuid.UUID
	Deadline    *time.Time
}

type TaskFilter struct {
	ProjectID  uint
	ExecutorID uuid.UUID
	Status     string
}

func validTaskStatus(status string) bool {
	switch status {
	case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
		return true
	}
	return false
}

func taskQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Project").Preload("Executor").Preload("Executor.Post")
}

func (s *TaskService) ListTasks(filter TaskFilter, sortBy string) ([]models.Task, error) {
	q := taskQuery(models.DB)
	if filter.ProjectID != 0 {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ExecutorID != uuid.Nil {
		q = q.Where("executor_id = ?", filter.ExecutorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	switch sortBy {
	case "title", "deadline", "status", "created_at":
		q = q.Order(sortBy)
	default:
		q = q.Order("deadline, id")
	}

	var out []models.Task
	return out, q.Find(&out).Error
}

func (s *TaskService) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	err := taskQuery(models.DB).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) CreateTask(data *TaskData) (*models.Task, error) {
	if data.Title == "" || data.ProjectID == 0 || data.ExecutorID == uuid.Nil {
		return nil, ErrInvalidArgument
	}

	var project models.Project
	if err := models.DB.First(&project, data.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var executor models.Employee
	if err := models.DB.First(&executor, "id = ?", data.ExecutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task := &models.Task{
		Title:       data.Title,
		Description: data.Description,
		Status:      models.TaskStatusOpen,
		ProjectID:   data.ProjectID,
		ExecutorID:  data.ExecutorID,
		Deadline:    data.Deadline,
	}
	if err := models.DB.Create(task).Error; err != nil {
		return nil, err
	}

	return s.GetTask(task.ID)
}

func (s *TaskService) UpdateTask(id uint, data *TaskData) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if data.Title != "" {
		task.Title = data.Title
	}
	if data.Description != "" {
		task.Description = data.Description
	}
	if data.ExecutorID != uuid.Nil {
		var executor models.Employee
		if err := models.DB.First(&executor, "id = ?", data.ExecutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		task.ExecutorID = data.ExecutorID
	}
	if data.Deadline != nil {
		task.Deadline = data.Deadline
	}

	if err := models.DB.Save(task).Error; err != nil {
		return nil, err
	}

	return s.GetTask(id)
}

// UpdateStatus moves a task through its status set. Only the assigned
// executor may change it; administrators may override.
func (s *TaskService) UpdateStatus(id uint, status string, actor *models.Employee) (*models.Task, error) {
	if !validTaskStatus(status) {
		return nil, ErrInvalidArgument
	}

	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if task.ExecutorID != actor.ID && actor.PermissionLevel() != models.PermissionAdmin {
		return nil, ErrForbidden
	}

	task.Status = status
	if err := models.DB.Save(task).Error; err != nil {
		return nil, err
	}

	return s.GetTask(id)
}

func (s *TaskService) DeleteTask(id uint) error {
	task, err := s.GetTask(id)
	if err != nil {
		return err
	}
	return models.DB.Delete(task).Error
}
