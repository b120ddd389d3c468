package service

import (
	"context"

	"learnhub/internal/microservices/http-api/dto"
	"learnhub/internal/microservices/http-api/models"
	"learnhub/internal/microservices/http-api/repository"
)

type CourseService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Course, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
}

type courseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) GetAll(ctx context.Context, page, pageSize int) ([]models.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.GetAll(ctx, page, pageSize)
}

// GetByID returns (nil, nil) when the course does not exist.
func (s *courseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a course with its module/lesson tree in one insert.
// Module and lesson positions follow the order of the request arrays.
func (s *courseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
	}

	for mi, m := range req.Modules {
		module := models.CourseModule{
			Title:    m.Title,
			Position: mi,
		}
		for li, l := range m.Lessons {
			module.Lessons = append(module.Lessons, models.Lesson{
				Title:    l.Title,
				Position: li,
				Duration: l.Duration,
				VideoURL: l.VideoURL,
			})
		}
		course.Modules = append(course.Modules, module)
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}
