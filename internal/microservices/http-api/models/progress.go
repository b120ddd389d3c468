package models

import "time"

// CompletionThreshold is the progress percentage at which a lesson counts as
// completed. Reaching it latches Completed to true permanently.
const CompletionThreshold = 90

// LessonProgress represents one user's engagement with one lesson.
type LessonProgress struct {
	UserID      string     `gorm:"type:uuid;not null;primaryKey;index:idx_user_lesson" json:"user_id"`
	LessonID    int64      `gorm:"not null;primaryKey;index:idx_user_lesson" json:"lesson_id"`
	Progress    float64    `gorm:"default:0" json:"progress"`   // 0-100
	TimeSpent   int64      `gorm:"default:0" json:"time_spent"` // seconds, only ever grows
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	LastWatched time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"last_watched"`
}

// TableName overrides the table name used by LessonProgress to `lesson_progress`
func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// ApplyUpdate merges a new progress report into the record:
// progress takes the max of old and new (clamped to [0,100]), time spent
// accumulates, and Completed latches true once progress reaches the
// completion threshold. CompletedAt is set exactly once, on the
// incomplete-to-complete transition.
func (p *LessonProgress) ApplyUpdate(progress float64, timeSpentDelta int64, now time.Time) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if timeSpentDelta < 0 {
		timeSpentDelta = 0
	}

	if progress > p.Progress {
		p.Progress = progress
	}
	p.TimeSpent += timeSpentDelta

	if !p.Completed && p.Progress >= CompletionThreshold {
		p.Completed = true
		completedAt := now
		p.CompletedAt = &completedAt
	}
	p.LastWatched = now
}
