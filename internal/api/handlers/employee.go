package handlers

import (
	"net/http"
	"strconv"

	"staffdesk/internal/api/middleware"
	"staffdesk/internal/api/respond"
	"staffdesk/internal/config"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: services.NewEmployeeService(cfg),
	}
}

type CreateEmployeeRequest struct {
	Login        string `json:"login" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	MiddleName   string `json:"middle_name"`
	Phone        string `json:"phone"`
	PostID       uint   `json:"post_id" binding:"required"`
	StatusID     uint   `json:"status_id" binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required"`
	GenderID     uint   `json:"gender_id"`
}

type UpdateEmployeeRequest struct {
	Email        *string `json:"email"`
	LastName     *string `json:"last_name"`
	FirstName    *string `json:"first_name"`
	MiddleName   *string `json:"middle_name"`
	Phone        *string `json:"phone"`
	PostID       *uint   `json:"post_id"`
	StatusID     *uint   `json:"status_id"`
	DepartmentID *uint   `json:"department_id"`
	GenderID     *uint   `json:"gender_id"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func employeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.BadRequest(c, "invalid employee id")
		return uuid.Nil, false
	}
	return id, true
}

// GetEmployees returns employees with optional department filter and sort.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	var departmentID uint
	if v := c.Query("department_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respond.BadRequest(c, "invalid department_id")
			return
		}
		departmentID = uint(parsed)
	}

	employees, err := h.employeeService.ListEmployees(departmentID, c.Query("sort"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	emp, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.CreateEmployee(&services.CreateEmployeeData{
		Login:        req.Login,
		Email:        req.Email,
		Password:     req.Password,
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		Phone:        req.Phone,
		PostID:       req.PostID,
		StatusID:     req.StatusID,
		DepartmentID: req.DepartmentID,
		GenderID:     req.GenderID,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.UpdateEmployee(id, &services.UpdateEmployeeData{
		Email:        req.Email,
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		Phone:        req.Phone,
		PostID:       req.PostID,
		StatusID:     req.StatusID,
		DepartmentID: req.DepartmentID,
		GenderID:     req.GenderID,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, emp)
}

// UpdatePassword changes a password. Admins may change anyone's; everyone
// else only their own.
func (h *EmployeeHandler) UpdatePassword(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	actor := middleware.CurrentEmployee(c)
	if actor.PermissionLevel() != models.PermissionAdmin && actor.ID != id {
		respond.Error(c, services.ErrForbidden)
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "password is required")
		return
	}

	if err := h.employeeService.UpdatePassword(id, req.Password); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
