package repository

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, userID string, lessonID int64, progress float64, timeSpentDelta int64) (*models.LessonProgress, error)
	Get(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error)
	GetByUser(ctx context.Context, userID string) ([]models.LessonProgress, error)
	GetByUserAndLessons(ctx context.Context, userID string, lessonIDs []int64) ([]models.LessonProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert creates or merges a progress record for (user, lesson).
// The row is locked for the duration of the transaction so the
// max(old, new) merge never loses an update under racing writers.
func (r *progressRepository) Upsert(ctx context.Context, userID string, lessonID int64, progress float64, timeSpentDelta int64) (*models.LessonProgress, error) {
	var record models.LessonProgress
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&record).Error

		if err == gorm.ErrRecordNotFound {
			record = models.LessonProgress{
				UserID:   userID,
				LessonID: lessonID,
			}
			record.ApplyUpdate(progress, timeSpentDelta, now)
			return tx.Create(&record).Error
		} else if err != nil {
			return err
		}

		record.ApplyUpdate(progress, timeSpentDelta, now)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	return &record, nil
}

func (r *progressRepository) Get(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error) {
	var record models.LessonProgress

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // No progress yet
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &record, nil
}

// GetByUser returns every progress record for a user ordered by recency.
// Streak and calendar views are both derived from this single snapshot.
func (r *progressRepository) GetByUser(ctx context.Context, userID string) ([]models.LessonProgress, error) {
	var records []models.LessonProgress

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_watched DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("get user progress: %w", err)
	}

	return records, nil
}

func (r *progressRepository) GetByUserAndLessons(ctx context.Context, userID string, lessonIDs []int64) ([]models.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return []models.LessonProgress{}, nil
	}

	var records []models.LessonProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("get course progress records: %w", err)
	}

	return records, nil
}
