package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"learnhub/internal/microservices/http-api/dto"
	"learnhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	courseProgress    service.CourseProgressService
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService, courseProgress service.CourseProgressService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		courseProgress:    courseProgress,
	}
}

// RegisterRoutes registers the enrollment routes
func (h *EnrollmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/:course_id", h.Enroll)
	rg.DELETE("/:course_id", h.Unenroll)
}

// List returns the user's enrolled courses, each annotated with the course
// progress rollup
func (h *EnrollmentHandler) List(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.courseProgress.GetEnrolledCourses(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.EnrollmentListResponse{
		Items: items,
		Total: len(items),
	})
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	switch err := h.enrollmentService.Enroll(ctx, userID.(string), courseID); err {
	case nil:
		c.JSON(http.StatusCreated, gin.H{"message": "enrolled"})
	case service.ErrCourseNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.ErrAlreadyEnrolled:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := strconv.ParseInt(c.Param("course_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	switch err := h.enrollmentService.Unenroll(ctx, userID.(string), courseID); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "unenrolled"})
	case service.ErrNotEnrolled:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
