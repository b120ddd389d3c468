package service

import (
	"context"
	"errors"

	"learnhub/internal/microservices/http-api/repository"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = repository.ErrAlreadyEnrolled
	ErrNotEnrolled     = errors.New("not enrolled in course")
)

type EnrollmentService interface {
	Enroll(ctx context.Context, userID string, courseID int64) error
	Unenroll(ctx context.Context, userID string, courseID int64) error
}

type enrollmentService struct {
	repo       repository.EnrollmentRepository
	courseRepo repository.CourseRepository
}

func NewEnrollmentService(repo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{
		repo:       repo,
		courseRepo: courseRepo,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID string, courseID int64) error {
	// Check if course exists
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}

	exists, err := s.repo.Exists(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyEnrolled
	}

	return s.repo.Add(ctx, userID, courseID)
}

func (s *enrollmentService) Unenroll(ctx context.Context, userID string, courseID int64) error {
	exists, err := s.repo.Exists(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotEnrolled
	}

	return s.repo.Remove(ctx, userID, courseID)
}
