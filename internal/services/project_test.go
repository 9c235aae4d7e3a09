package services

import (
	"testing"

	"staffdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSimilarNameGuard(t *testing.T) {
	setupTestDB(t)
	svc := NewProjectService()

	_, err := svc.CreateProject(&ProjectData{Name: "Website Redesign"}, false)
	require.NoError(t, err)

	t.Run("substring of existing name is rejected", func(t *testing.T) {
		_, err := svc.CreateProject(&ProjectData{Name: "website"}, false)
		assert.ErrorIs(t, err, ErrSimilarExists)
	})

	t.Run("case does not matter", func(t *testing.T) {
		_, err := svc.CreateProject(&ProjectData{Name: "WEBSITE REDESIGN"}, false)
		assert.ErrorIs(t, err, ErrSimilarExists)
	})

	t.Run("force overrides the guard", func(t *testing.T) {
		p, err := svc.CreateProject(&ProjectData{Name: "website"}, true)
		require.NoError(t, err)
		assert.Equal(t, "website", p.Name)
	})

	t.Run("unrelated name passes", func(t *testing.T) {
		_, err := svc.CreateProject(&ProjectData{Name: "Warehouse Migration"}, false)
		assert.NoError(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := svc.CreateProject(&ProjectData{Name: "   "}, false)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestProjectDeleteBlockedByTasks(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewProjectService()
	emp := createTestEmployee(t, cfg, "executor", "secret-password", models.PermissionDefault, true)

	project, err := svc.CreateProject(&ProjectData{Name: "Doomed Project"}, false)
	require.NoError(t, err)

	taskSvc := NewTaskService()
	task, err := taskSvc.CreateTask(&TaskData{
		Title:      "Leftover work",
		ProjectID:  project.ID,
		ExecutorID: emp.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteProject(project.ID)
	assert.ErrorIs(t, err, ErrProjectReferenced)

	require.NoError(t, taskSvc.DeleteTask(task.ID))
	assert.NoError(t, svc.DeleteProject(project.ID))
}

func TestTaskStatusExecutorOnly(t *testing.T) {
	cfg := setupTestDB(t)
	projectSvc := NewProjectService()
	taskSvc := NewTaskService()

	executor := createTestEmployee(t, cfg, "assigned", "secret-password", models.PermissionDefault, true)
	bystander := createTestEmployee(t, cfg, "bystander", "secret-password", models.PermissionDefault, true)
	admin := createTestEmployee(t, cfg, "boss", "secret-password", models.PermissionAdmin, true)

	project, err := projectSvc.CreateProject(&ProjectData{Name: "Quarterly Report"}, false)
	require.NoError(t, err)

	task, err := taskSvc.CreateTask(&TaskData{
		Title:      "Collect figures",
		ProjectID:  project.ID,
		ExecutorID: executor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusOpen, task.Status)

	_, err = taskSvc.UpdateStatus(task.ID, models.TaskStatusInProgress, bystander)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := taskSvc.UpdateStatus(task.ID, models.TaskStatusInProgress, executor)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, updated.Status)

	// Administrators may override the executor restriction
	updated, err = taskSvc.UpdateStatus(task.ID, models.TaskStatusDone, admin)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)

	_, err = taskSvc.UpdateStatus(task.ID, "bogus", executor)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
