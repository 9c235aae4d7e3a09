package handlers

import (
	"net/http"

	"staffdesk/internal/api/respond"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: services.NewReferenceService(),
	}
}

func (h *ReferenceHandler) GetDepartments(c *gin.Context) {
	departments, err := h.referenceService.Departments()
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

func (h *ReferenceHandler) GetPosts(c *gin.Context) {
	posts, err := h.referenceService.Posts()
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *ReferenceHandler) GetStatuses(c *gin.Context) {
	statuses, err := h.referenceService.Statuses()
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

func (h *ReferenceHandler) GetGenders(c *gin.Context) {
	genders, err := h.referenceService.Genders()
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"genders": genders})
}
