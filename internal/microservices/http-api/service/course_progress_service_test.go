package service

import (
	"context"
	"testing"
	"time"

	"learnhub/internal/microservices/http-api/models"
	"learnhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK REPOSITORIES ---

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Course, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockCourseRepository) CourseIDForLesson(ctx context.Context, lessonID int64) (int64, error) {
	args := m.Called(ctx, lessonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, userID string, lessonID int64, progress float64, timeSpentDelta int64) (*models.LessonProgress, error) {
	args := m.Called(ctx, userID, lessonID, progress, timeSpentDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) GetByUser(ctx context.Context, userID string) ([]models.LessonProgress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) GetByUserAndLessons(ctx context.Context, userID string, lessonIDs []int64) ([]models.LessonProgress, error) {
	args := m.Called(ctx, userID, lessonIDs)
	return args.Get(0).([]models.LessonProgress), args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Add(ctx context.Context, userID string, courseID int64) error {
	args := m.Called(ctx, userID, courseID)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Remove(ctx context.Context, userID string, courseID int64) error {
	args := m.Called(ctx, userID, courseID)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) List(ctx context.Context, userID string) ([]models.Enrollment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, userID string, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

var _ repository.CourseRepository = (*MockCourseRepository)(nil)
var _ repository.ProgressRepository = (*MockProgressRepository)(nil)
var _ repository.EnrollmentRepository = (*MockEnrollmentRepository)(nil)

// --- TESTS ---

func TestBuildCourseSummary_OneOfTwoLessonsCompleted(t *testing.T) {
	lastWatched := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	records := []models.LessonProgress{
		{UserID: "user-1", LessonID: 1, Progress: 100, TimeSpent: 300, Completed: true, LastWatched: lastWatched},
	}

	summary := buildCourseSummary("user-1", 10, []int64{1, 2}, records)

	assert.Equal(t, 2, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 50, summary.Progress)
	assert.Equal(t, int64(300), summary.TimeSpent)
	assert.NotNil(t, summary.LastAccessed)
	assert.Equal(t, lastWatched, *summary.LastAccessed)
}

func TestBuildCourseSummary_ZeroLessons(t *testing.T) {
	summary := buildCourseSummary("user-1", 10, nil, nil)

	assert.Equal(t, 0, summary.TotalLessons)
	assert.Equal(t, 0, summary.CompletedLessons)
	assert.Equal(t, 0, summary.Progress)
	assert.Equal(t, int64(0), summary.TimeSpent)
	assert.Nil(t, summary.LastAccessed)
}

func TestBuildCourseSummary_UnstartedLessonsCountAsZero(t *testing.T) {
	records := []models.LessonProgress{
		{UserID: "user-1", LessonID: 1, Progress: 90, TimeSpent: 100, Completed: true, LastWatched: time.Now()},
		{UserID: "user-1", LessonID: 2, Progress: 30, TimeSpent: 50, LastWatched: time.Now()},
	}

	// Four lessons, two untouched: mean is (90+30+0+0)/4 = 30
	summary := buildCourseSummary("user-1", 10, []int64{1, 2, 3, 4}, records)

	assert.Equal(t, 4, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 30, summary.Progress)
	assert.Equal(t, int64(150), summary.TimeSpent)
}

func TestGetCourseProgress_CourseMissing(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	enrollmentRepo := new(MockEnrollmentRepository)

	courseRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil).Once()

	svc := NewCourseProgressService(courseRepo, progressRepo, enrollmentRepo, nil, nil)
	summary, err := svc.GetCourseProgress(context.Background(), "user-1", 99)

	assert.NoError(t, err)
	assert.Nil(t, summary) // missing course, not a zero summary
	courseRepo.AssertExpectations(t)
}

func TestGetCourseProgress_EmptyCourse(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	enrollmentRepo := new(MockEnrollmentRepository)

	course := &models.Course{ID: 10, Title: "Empty Course"}
	courseRepo.On("GetByID", mock.Anything, int64(10)).Return(course, nil).Once()
	progressRepo.On("GetByUserAndLessons", mock.Anything, "user-1", mock.Anything).
		Return([]models.LessonProgress{}, nil).Maybe()

	svc := NewCourseProgressService(courseRepo, progressRepo, enrollmentRepo, nil, nil)
	summary, err := svc.GetCourseProgress(context.Background(), "user-1", 10)

	assert.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Equal(t, 0, summary.TotalLessons)
	assert.Equal(t, 0, summary.Progress)
}

func TestGetCourseProgress_FullRollup(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	enrollmentRepo := new(MockEnrollmentRepository)

	course := &models.Course{
		ID:    10,
		Title: "Go Fundamentals",
		Modules: []models.CourseModule{
			{ID: 1, CourseID: 10, Lessons: []models.Lesson{{ID: 1, ModuleID: 1}, {ID: 2, ModuleID: 1}}},
			{ID: 2, CourseID: 10, Lessons: []models.Lesson{{ID: 3, ModuleID: 2}}},
		},
	}
	records := []models.LessonProgress{
		{UserID: "user-1", LessonID: 1, Progress: 100, TimeSpent: 600, Completed: true, LastWatched: time.Now()},
		{UserID: "user-1", LessonID: 3, Progress: 50, TimeSpent: 300, LastWatched: time.Now()},
	}

	courseRepo.On("GetByID", mock.Anything, int64(10)).Return(course, nil).Once()
	progressRepo.On("GetByUserAndLessons", mock.Anything, "user-1", []int64{1, 2, 3}).
		Return(records, nil).Once()

	svc := NewCourseProgressService(courseRepo, progressRepo, enrollmentRepo, nil, nil)
	summary, err := svc.GetCourseProgress(context.Background(), "user-1", 10)

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.Equal(t, 50, summary.Progress) // (100+0+50)/3
	assert.Equal(t, int64(900), summary.TimeSpent)
	progressRepo.AssertExpectations(t)
}

func TestGetEnrolledCourses_StableOrderWithSummaries(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	enrollmentRepo := new(MockEnrollmentRepository)

	first := &models.Course{ID: 1, Title: "First"}
	second := &models.Course{ID: 2, Title: "Second", Modules: []models.CourseModule{
		{ID: 5, CourseID: 2, Lessons: []models.Lesson{{ID: 7, ModuleID: 5}}},
	}}

	enrollmentRepo.On("List", mock.Anything, "user-1").Return([]models.Enrollment{
		{UserID: "user-1", CourseID: 1, Course: first, EnrolledAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: "user-1", CourseID: 2, Course: second, EnrolledAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()
	courseRepo.On("GetByID", mock.Anything, int64(1)).Return(first, nil).Once()
	courseRepo.On("GetByID", mock.Anything, int64(2)).Return(second, nil).Once()
	progressRepo.On("GetByUserAndLessons", mock.Anything, "user-1", []int64{7}).
		Return([]models.LessonProgress{
			{UserID: "user-1", LessonID: 7, Progress: 100, TimeSpent: 60, Completed: true, LastWatched: time.Now()},
		}, nil).Once()

	svc := NewCourseProgressService(courseRepo, progressRepo, enrollmentRepo, nil, nil)
	items, err := svc.GetEnrolledCourses(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Course.Title)
	assert.Equal(t, 0, items[0].Progress.TotalLessons)
	assert.Equal(t, "Second", items[1].Course.Title)
	assert.Equal(t, 100, items[1].Progress.Progress)
	assert.Equal(t, 1, items[1].Progress.CompletedLessons)
}
