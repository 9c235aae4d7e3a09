package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"staffdesk/internal/config"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a test database
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	testDBPath := fmt.Sprintf("%s/staffdesk_routes_test_%d.db", os.TempDir(), time.Now().UnixNano())

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
	require.NoError(t, services.NewReferenceService().EnsureReferenceData())

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

// createTestEmployee creates an employee with the given permission tier
func createTestEmployee(t *testing.T, cfg *config.Config, login, password string, perm models.Permission) *models.Employee {
	t.Helper()

	var post models.Post
	require.NoError(t, models.DB.Where("permission = ?", string(perm)).First(&post).Error)
	var status models.Status
	require.NoError(t, models.DB.Where("active = ?", true).First(&status).Error)
	var dept models.Department
	require.NoError(t, models.DB.First(&dept).Error)

	svc := services.NewEmployeeService(cfg)
	emp, err := svc.CreateEmployee(&services.CreateEmployeeData{
		Login:        login,
		Email:        login + "@example.com",
		Password:     password,
		LastName:     "Testov",
		FirstName:    "Test",
		PostID:       post.ID,
		StatusID:     status.ID,
		DepartmentID: dept.ID,
	})
	require.NoError(t, err)
	return emp
}

// setupTestRouter creates a test router with routes
func setupTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, cfg)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, router *gin.Engine, login, password string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["code"].(string)
	return code
}

func TestAuthRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	router := setupTestRouter(cfg)

	createTestEmployee(t, cfg, "admin", "admin-password", models.PermissionAdmin)
	createTestEmployee(t, cfg, "worker", "worker-password", models.PermissionDefault)

	t.Run("POST /api/auth/login - success", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
			"login":    "worker",
			"password": "worker-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "token")
		assert.Contains(t, resp, "employee")
	})

	t.Run("POST /api/auth/login - invalid credentials", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
			"login":    "worker",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
	})

	t.Run("POST /api/auth/verify - success", func(t *testing.T) {
		token := loginAs(t, router, "worker", "worker-password")

		w := doJSON(t, router, "POST", "/api/auth/verify", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(models.PermissionDefault), resp["permission"])
	})

	t.Run("wrong authorization scheme fails before the session store", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/auth/verify", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "MISSING_TOKEN", errorCode(t, w))

		// No audit entry is written for a request that never reached verify
		var count int64
		models.DB.Model(&models.AccessLog{}).
			Where("action = ? AND detail = ?", services.ActionVerify, "malformed token").
			Count(&count)
		assert.Zero(t, count)
	})

	t.Run("POST /api/auth/logout - token dies with the session", func(t *testing.T) {
		token := loginAs(t, router, "worker", "worker-password")

		w := doJSON(t, router, "POST", "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "POST", "/api/auth/verify", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, w))

		w = doJSON(t, router, "POST", "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("second login invalidates the first token", func(t *testing.T) {
		t1 := loginAs(t, router, "worker", "worker-password")
		t2 := loginAs(t, router, "worker", "worker-password")
		require.NotEqual(t, t1, t2)

		w := doJSON(t, router, "POST", "/api/auth/verify", t1, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(t, router, "POST", "/api/auth/verify", t2, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPasswordResetRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	router := setupTestRouter(cfg)
	createTestEmployee(t, cfg, "resetter", "old-password1", models.PermissionDefault)

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/auth/password-reset/request", "", map[string]string{
			"email": "ghost@example.com",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})

	t.Run("full reset flow revokes sessions", func(t *testing.T) {
		sessionToken := loginAs(t, router, "resetter", "old-password1")

		w := doJSON(t, router, "POST", "/api/auth/password-reset/request", "", map[string]string{
			"email": "resetter@example.com",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		resetToken, _ := resp["token"].(string)
		require.NotEmpty(t, resetToken)

		w = doJSON(t, router, "POST", "/api/auth/password-reset/confirm", "", map[string]string{
			"token":        resetToken,
			"new_password": "new-password1",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Old session token no longer verifies
		w = doJSON(t, router, "POST", "/api/auth/verify", sessionToken, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// And the new password logs in
		loginAs(t, router, "resetter", "new-password1")
	})

	t.Run("confirm with consumed token", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/auth/password-reset/confirm", "", map[string]string{
			"token":        "already-used-or-unknown",
			"new_password": "whatever-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
	})
}

func TestPermissionGates(t *testing.T) {
	cfg := setupTestDB(t)
	router := setupTestRouter(cfg)

	createTestEmployee(t, cfg, "admin", "admin-password", models.PermissionAdmin)
	createTestEmployee(t, cfg, "head", "head-password", models.PermissionDepartmentHead)
	createTestEmployee(t, cfg, "worker", "worker-password", models.PermissionDefault)

	adminToken := loginAs(t, router, "admin", "admin-password")
	headToken := loginAs(t, router, "head", "head-password")
	workerToken := loginAs(t, router, "worker", "worker-password")

	var dept models.Department
	require.NoError(t, models.DB.First(&dept).Error)
	var post models.Post
	require.NoError(t, models.DB.Where("permission = ?", string(models.PermissionDefault)).First(&post).Error)
	var status models.Status
	require.NoError(t, models.DB.Where("active = ?", true).First(&status).Error)

	newEmployee := map[string]interface{}{
		"login":         "newcomer",
		"email":         "newcomer@example.com",
		"password":      "newcomer-password",
		"last_name":     "Newman",
		"first_name":    "New",
		"post_id":       post.ID,
		"status_id":     status.ID,
		"department_id": dept.ID,
	}

	t.Run("employee create requires admin", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/employees", workerToken, newEmployee)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w))

		w = doJSON(t, router, "POST", "/api/employees", headToken, newEmployee)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(t, router, "POST", "/api/employees", adminToken, newEmployee)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("any authenticated employee may list", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/employees", workerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "GET", "/api/employees", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "MISSING_TOKEN", errorCode(t, w))
	})

	t.Run("project create allows department head", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/projects", headToken, map[string]interface{}{
			"name": "Intranet Revamp",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, "POST", "/api/projects", workerToken, map[string]interface{}{
			"name": "Shadow Project",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("similar project name needs force", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/projects", headToken, map[string]interface{}{
			"name": "intranet",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SIMILAR_EXISTS", errorCode(t, w))

		w = doJSON(t, router, "POST", "/api/projects", headToken, map[string]interface{}{
			"name":  "intranet",
			"force": true,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("hash-password utility is admin only", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/auth/hash-password", workerToken, map[string]string{
			"password": "some-password",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(t, router, "POST", "/api/auth/hash-password", adminToken, map[string]string{
			"password": "some-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["hash"])
	})

	t.Run("audit log is admin only", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/logs", workerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(t, router, "GET", "/api/logs", adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "logs")
		assert.Contains(t, resp, "total")
	})
}

func TestTaskExecutorGate(t *testing.T) {
	cfg := setupTestDB(t)
	router := setupTestRouter(cfg)

	createTestEmployee(t, cfg, "head", "head-password", models.PermissionDepartmentHead)
	executor := createTestEmployee(t, cfg, "assigned", "worker-password", models.PermissionDefault)
	createTestEmployee(t, cfg, "bystander", "worker-password", models.PermissionDefault)

	headToken := loginAs(t, router, "head", "head-password")
	executorToken := loginAs(t, router, "assigned", "worker-password")
	bystanderToken := loginAs(t, router, "bystander", "worker-password")

	w := doJSON(t, router, "POST", "/api/projects", headToken, map[string]interface{}{
		"name": "Annual Inventory",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = doJSON(t, router, "POST", "/api/tasks", headToken, map[string]interface{}{
		"title":       "Count the warehouse",
		"project_id":  project.ID,
		"executor_id": executor.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	statusPath := fmt.Sprintf("/api/tasks/%d/status", task.ID)

	t.Run("non-executor cannot change status", func(t *testing.T) {
		w := doJSON(t, router, "PUT", statusPath, bystanderToken, map[string]string{
			"status": models.TaskStatusInProgress,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w))
	})

	t.Run("executor changes status", func(t *testing.T) {
		w := doJSON(t, router, "PUT", statusPath, executorToken, map[string]string{
			"status": models.TaskStatusInProgress,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, models.TaskStatusInProgress, updated.Status)
	})

	t.Run("invalid status value", func(t *testing.T) {
		w := doJSON(t, router, "PUT", statusPath, executorToken, map[string]string{
			"status": "paused",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_ARGUMENT", errorCode(t, w))
	})
}
