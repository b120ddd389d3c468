package repository

import (
	"context"
	"fmt"

	"learnhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CourseRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Course, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error)
	CourseIDForLesson(ctx context.Context, lessonID int64) (int64, error)
	Create(ctx context.Context, course *models.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Course, int64, error) {
	var list []models.Course
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// GetByID loads the course with its full module -> lesson tree, modules and
// lessons ordered by position. Returns (nil, nil) when the course does not
// exist so callers can distinguish "missing" from "empty".
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.position ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (r *courseRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &lesson, nil
}

// CourseIDForLesson resolves lesson -> module -> course, used by the write
// path to invalidate the right course summary cache entry.
func (r *courseRepository) CourseIDForLesson(ctx context.Context, lessonID int64) (int64, error) {
	var courseID int64
	err := r.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Select("course_modules.course_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Scan(&courseID).Error
	if err != nil {
		return 0, fmt.Errorf("resolve course for lesson: %w", err)
	}
	return courseID, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
