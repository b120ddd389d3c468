package service

import (
	"context"
	"testing"
	"time"

	"learnhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateProgress_RejectsOutOfRangeProgress(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	courseRepo := new(MockCourseRepository)
	svc := NewProgressService(progressRepo, courseRepo, nil, nil)

	_, err := svc.Update(context.Background(), "user-1", 1, 150, 60)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = svc.Update(context.Background(), "user-1", 1, -1, 60)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	progressRepo.AssertNotCalled(t, "Upsert")
}

func TestUpdateProgress_RejectsNegativeDelta(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	courseRepo := new(MockCourseRepository)
	svc := NewProgressService(progressRepo, courseRepo, nil, nil)

	_, err := svc.Update(context.Background(), "user-1", 1, 50, -30)

	assert.ErrorIs(t, err, ErrNegativeDelta)
	progressRepo.AssertNotCalled(t, "Upsert")
}

func TestUpdateProgress_LessonMissing(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	courseRepo := new(MockCourseRepository)

	courseRepo.On("GetLessonByID", mock.Anything, int64(404)).Return(nil, nil).Once()

	svc := NewProgressService(progressRepo, courseRepo, nil, nil)
	_, err := svc.Update(context.Background(), "user-1", 404, 50, 60)

	assert.ErrorIs(t, err, ErrLessonNotFound)
	progressRepo.AssertNotCalled(t, "Upsert")
}

func TestUpdateProgress_MergesAndReturnsRecord(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	courseRepo := new(MockCourseRepository)

	lesson := &models.Lesson{ID: 1, ModuleID: 2, Title: "Intro"}
	stored := &models.LessonProgress{
		UserID:      "user-1",
		LessonID:    1,
		Progress:    95,
		TimeSpent:   360,
		Completed:   true,
		LastWatched: time.Now().UTC(),
	}

	courseRepo.On("GetLessonByID", mock.Anything, int64(1)).Return(lesson, nil).Once()
	progressRepo.On("Upsert", mock.Anything, "user-1", int64(1), float64(95), int64(60)).Return(stored, nil).Once()
	courseRepo.On("CourseIDForLesson", mock.Anything, int64(1)).Return(int64(10), nil).Once()

	svc := NewProgressService(progressRepo, courseRepo, nil, nil)
	record, err := svc.Update(context.Background(), "user-1", 1, 95, 60)

	assert.NoError(t, err)
	assert.Equal(t, stored, record)
	progressRepo.AssertExpectations(t)
	courseRepo.AssertExpectations(t)
}

func TestGetProgress_UntouchedLessonIsNil(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	courseRepo := new(MockCourseRepository)

	progressRepo.On("Get", mock.Anything, "user-1", int64(5)).Return(nil, nil).Once()

	svc := NewProgressService(progressRepo, courseRepo, nil, nil)
	record, err := svc.Get(context.Background(), "user-1", 5)

	assert.NoError(t, err)
	assert.Nil(t, record)
}
