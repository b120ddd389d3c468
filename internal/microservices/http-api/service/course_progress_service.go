package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"learnhub/internal/microservices/http-api/cache"
	"learnhub/internal/microservices/http-api/dto"
	"learnhub/internal/microservices/http-api/models"
	"learnhub/internal/microservices/http-api/repository"
)

type CourseProgressService interface {
	// GetCourseProgress returns (nil, nil) when the course does not exist.
	// A course with zero lessons yields a valid all-zero summary instead.
	GetCourseProgress(ctx context.Context, userID string, courseID int64) (*dto.CourseProgressSummary, error)
	GetEnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error)
}

type courseProgressService struct {
	courseRepo     repository.CourseRepository
	progressRepo   repository.ProgressRepository
	enrollmentRepo repository.EnrollmentRepository
	cache          *cache.SummaryCache
	logger         *slog.Logger
}

func NewCourseProgressService(
	courseRepo repository.CourseRepository,
	progressRepo repository.ProgressRepository,
	enrollmentRepo repository.EnrollmentRepository,
	summaryCache *cache.SummaryCache,
	logger *slog.Logger,
) CourseProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &courseProgressService{
		courseRepo:     courseRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          summaryCache,
		logger:         logger,
	}
}

func (s *courseProgressService) GetCourseProgress(ctx context.Context, userID string, courseID int64) (*dto.CourseProgressSummary, error) {
	if cached, err := s.cache.GetCourseSummary(ctx, userID, courseID); err == nil && cached != nil {
		return cached, nil
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil // course missing, not "zero progress"
	}

	summary, err := s.summarize(ctx, userID, course)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCourseSummary(ctx, summary); err != nil {
		s.logger.Warn("summary_cache_set_failed",
			"user_id", userID,
			"course_id", courseID,
			"error", err,
		)
	}

	return summary, nil
}

func (s *courseProgressService) GetEnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error) {
	enrollments, err := s.enrollmentRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EnrolledCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}

		// Reload with the module/lesson tree, the enrollment preload carries
		// only course metadata.
		course, err := s.courseRepo.GetByID(ctx, e.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			continue
		}

		summary, err := s.summarize(ctx, userID, course)
		if err != nil {
			return nil, err
		}

		items = append(items, dto.EnrolledCourseResponse{
			Course: dto.CourseResponse{
				ID:          course.ID,
				Slug:        course.Slug,
				Title:       course.Title,
				Description: course.Description,
				Level:       course.Level,
				CreatedAt:   course.CreatedAt,
			},
			EnrolledAt: e.EnrolledAt,
			Progress:   *summary,
		})
	}

	return items, nil
}

// summarize rolls lesson progress up through modules to the course level.
// Lessons without a record contribute progress=0 and time_spent=0 (left-join
// semantics), and a course with zero lessons produces an all-zero summary,
// never a division by zero.
func (s *courseProgressService) summarize(ctx context.Context, userID string, course *models.Course) (*dto.CourseProgressSummary, error) {
	lessonIDs := flattenLessonIDs(course)

	records, err := s.progressRepo.GetByUserAndLessons(ctx, userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	return buildCourseSummary(userID, course.ID, lessonIDs, records), nil
}

func flattenLessonIDs(course *models.Course) []int64 {
	var ids []int64
	for _, module := range course.Modules {
		for _, lesson := range module.Lessons {
			ids = append(ids, lesson.ID)
		}
	}
	return ids
}

func buildCourseSummary(userID string, courseID int64, lessonIDs []int64, records []models.LessonProgress) *dto.CourseProgressSummary {
	summary := &dto.CourseProgressSummary{
		CourseID: courseID,
		UserID:   userID,
	}

	summary.TotalLessons = len(lessonIDs)
	if summary.TotalLessons == 0 {
		return summary
	}

	byLesson := make(map[int64]models.LessonProgress, len(records))
	for _, r := range records {
		byLesson[r.LessonID] = r
	}

	var progressSum float64
	var lastAccessed time.Time
	for _, id := range lessonIDs {
		r, ok := byLesson[id]
		if !ok {
			continue // unstarted lesson counts as 0 in the mean
		}
		progressSum += r.Progress
		summary.TimeSpent += r.TimeSpent
		if r.Completed {
			summary.CompletedLessons++
		}
		if r.LastWatched.After(lastAccessed) {
			lastAccessed = r.LastWatched
		}
	}

	summary.Progress = int(math.Round(progressSum / float64(summary.TotalLessons)))
	if !lastAccessed.IsZero() {
		summary.LastAccessed = &lastAccessed
	}

	return summary
}
