package repository

import (
	"context"
	"errors"
	"fmt"

	"learnhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrAlreadyEnrolled is returned when the (user, course) pair already exists.
var ErrAlreadyEnrolled = errors.New("already enrolled in course")

type EnrollmentRepository interface {
	Add(ctx context.Context, userID string, courseID int64) error
	Remove(ctx context.Context, userID string, courseID int64) error
	List(ctx context.Context, userID string) ([]models.Enrollment, error)
	Exists(ctx context.Context, userID string, courseID int64) (bool, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Add(ctx context.Context, userID string, courseID int64) error {
	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("add enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) Remove(ctx context.Context, userID string, courseID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Enrollment{})

	if result.Error != nil {
		return fmt.Errorf("remove enrollment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("enrollment not found")
	}

	return nil
}

// List returns enrollments oldest first so the course listing order is stable.
func (r *enrollmentRepository) List(ctx context.Context, userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment

	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return enrollments, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID string, courseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
