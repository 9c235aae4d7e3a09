package handlers

import (
	"net/http"
	"strconv"
	"time"

	"staffdesk/internal/api/respond"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(),
	}
}

type ProjectRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	DepartmentID uint       `json:"department_id"`
	Deadline     *time.Time `json:"deadline"`
	Force        bool       `json:"force"`
}

type UpdateProjectRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	DepartmentID uint       `json:"department_id"`
	Deadline     *time.Time `json:"deadline"`
	Force        bool       `json:"force"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respond.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Query("name"), c.Query("sort"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "name is required")
		return
	}

	project, err := h.projectService.CreateProject(&services.ProjectData{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		Deadline:     req.Deadline,
	}, req.Force)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(id, &services.ProjectData{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		Deadline:     req.Deadline,
	}, req.Force)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
