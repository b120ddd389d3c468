package service

import (
	"context"
	"errors"
	"log/slog"

	"learnhub/internal/microservices/http-api/cache"
	"learnhub/internal/microservices/http-api/models"
	"learnhub/internal/microservices/http-api/repository"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrNegativeDelta   = errors.New("time spent delta must be non-negative")
)

type ProgressService interface {
	Update(ctx context.Context, userID string, lessonID int64, progress float64, timeSpentDelta int64) (*models.LessonProgress, error)
	Get(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error)
}

type progressService struct {
	repo       repository.ProgressRepository
	courseRepo repository.CourseRepository
	cache      *cache.SummaryCache
	logger     *slog.Logger
}

func NewProgressService(repo repository.ProgressRepository, courseRepo repository.CourseRepository, summaryCache *cache.SummaryCache, logger *slog.Logger) ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &progressService{
		repo:       repo,
		courseRepo: courseRepo,
		cache:      summaryCache,
		logger:     logger,
	}
}

// Update validates the report, merges it into the stored record and drops
// the stale course summary from the cache. Storage failures propagate to the
// caller; they are never silently defaulted to "no progress".
func (s *progressService) Update(ctx context.Context, userID string, lessonID int64, progress float64, timeSpentDelta int64) (*models.LessonProgress, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}
	if timeSpentDelta < 0 {
		return nil, ErrNegativeDelta
	}

	// Validate lesson exists
	lesson, err := s.courseRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	record, err := s.repo.Upsert(ctx, userID, lessonID, progress, timeSpentDelta)
	if err != nil {
		return nil, err
	}

	// Best-effort cache invalidation: a stale summary is tolerable, a failed
	// write is not.
	if courseID, err := s.courseRepo.CourseIDForLesson(ctx, lessonID); err == nil && courseID != 0 {
		if err := s.cache.InvalidateCourseSummary(ctx, userID, courseID); err != nil {
			s.logger.Warn("summary_cache_invalidation_failed",
				"user_id", userID,
				"course_id", courseID,
				"error", err,
			)
		}
	}

	return record, nil
}

func (s *progressService) Get(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error) {
	return s.repo.Get(ctx, userID, lessonID)
}
