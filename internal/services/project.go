package services

import (
	"errors"
	"strings"
	"time"

	"staffdesk/internal/models"

	"gorm.io/gorm"
)

type ProjectService struct{}

func NewProjectService() *ProjectService {
	return &ProjectService{}
}

type ProjectData struct {
	Name         string
	Description  string
	DepartmentID uint
	Deadline     *time.Time
}

// ListProjects returns projects, optionally filtered by a name substring and
// sorted by a whitelisted column.
func (s *ProjectService) ListProjects(nameFilter, sortBy string) ([]models.Project, error) {
	q := models.DB.Preload("Department")
	if nameFilter != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
	}

	switch sortBy {
	case "name", "deadline", "created_at":
		q = q.Order(sortBy)
	default:
		q = q.Order("name")
	}

	var out []models.Project
	return out, q.Find(&out).Error
}

func (s *ProjectService) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	err := models.DB.Preload("Department").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// hasSimilarName guards against near-duplicate entries: a case-insensitive
// containment match counts as similar.
func (s *ProjectService) hasSimilarName(name string, excludeID uint) (bool, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false, nil
	}

	var count int64
	err := models.DB.Model(&models.Project{}).
		Where("id != ?", excludeID).
		Where("LOWER(name) LIKE ?", "%"+needle+"%").
		Count(&count).Error
	return count > 0, err
}

// CreateProject creates a project. Unless force is set, a similar existing
// name is rejected so duplicates need an explicit confirmation.
func (s *ProjectService) CreateProject(data *ProjectData, force bool) (*models.Project, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, ErrInvalidArgument
	}

	if !force {
		similar, err := s.hasSimilarName(data.Name, 0)
		if err != nil {
			return nil, err
		}
		if similar {
			return nil, ErrSimilarExists
		}
	}

	project := &models.Project{
		Name:         strings.TrimSpace(data.Name),
		Description:  data.Description,
		DepartmentID: data.DepartmentID,
		Deadline:     data.Deadline,
	}
	if err := models.DB.Create(project).Error; err != nil {
		return nil, err
	}

	return s.GetProject(project.ID)
}

func (s *ProjectService) UpdateProject(id uint, data *ProjectData, force bool) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if data.Name != "" && !strings.EqualFold(data.Name, project.Name) {
		if !force {
			similar, err := s.hasSimilarName(data.Name, id)
			if err != nil {
				return nil, err
			}
			if similar {
				return nil, ErrSimilarExists
			}
		}
		project.Name = strings.TrimSpace(data.Name)
	}
	if data.Description != "" {
		project.Description = data.Description
	}
	if data.DepartmentID != 0 {
		project.DepartmentID = data.DepartmentID
	}
	if data.Deadline != nil {
		project.Deadline = data.Deadline
	}

	if err := models.DB.Save(project).Error; err != nil {
		return nil, err
	}

	return s.GetProject(id)
}

// DeleteProject removes a project with no tasks attached.
func (s *ProjectService) DeleteProject(id uint) error {
	project, err := s.GetProject(id)
	if err != nil {
		return err
	}

	var taskCount int64
	models.DB.Model(&models.Task{}).Where("project_id = ?", id).Count(&taskCount)
	if taskCount > 0 {
		return ErrProjectReferenced
	}

	return models.DB.Delete(project).Error
}
