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

type ProgressHandler struct {
	progressService service.ProgressService
	courseProgress  service.CourseProgressService
	streakService   service.StreakService
}

func NewProgressHandler(
	progressService service.ProgressService,
	courseProgress service.CourseProgressService,
	streakService service.StreakService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		courseProgress:  courseProgress,
		streakService:   streakService,
	}
}

// RegisterRoutes registers the progress-related routes
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/lesson/:lesson_id", h.UpdateLessonProgress)
	rg.GET("/lesson/:lesson_id", h.GetLessonProgress)
	rg.GET("/course/:course_id", h.GetCourseProgress)
	rg.GET("/streak", h.GetStreak)
}

// UpdateLessonProgress merges a watch report into the stored record
func (h *ProgressHandler) UpdateLessonProgress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lessonID, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	record, err := h.progressService.Update(ctx, userID.(string), lessonID, req.Progress, req.TimeSpentDelta)
	switch err {
	case nil:
	case service.ErrLessonNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case service.ErrInvalidProgress, service.ErrNegativeDelta:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetLessonProgress returns the stored record, or 404 when the user never
// touched the lesson
func (h *ProgressHandler) GetLessonProgress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lessonID, err := strconv.ParseInt(c.Param("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	record, err := h.progressService.Get(ctx, userID.(string), lessonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no progress recorded for lesson"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetCourseProgress returns the course-level rollup, 404 when the course
// itself does not exist
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
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

	summary, err := h.courseProgress.GetCourseProgress(ctx, userID.(string), courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStreak returns streak counters, the 365-day heatmap and milestones
func (h *ProgressHandler) GetStreak(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	streak, err := h.streakService.GetLearningStreak(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, streak)
}
