package dto

import "time"

// DTOs for progress-related operations in HTTP API

// UpdateProgressRequest: payload for reporting watch progress on a lesson.
// TimeSpentDelta is the seconds watched since the previous report.
type UpdateProgressRequest struct {
	Progress       float64 `json:"progress" binding:"min=0,max=100"`
	TimeSpentDelta int64   `json:"time_spent_delta" binding:"min=0"`
}

// CourseProgressSummary is the per-course rollup of a user's lesson records.
// Derived on demand, never persisted.
type CourseProgressSummary struct {
	CourseID         int64      `json:"course_id"`
	UserID           string     `json:"user_id"`
	TotalLessons     int        `json:"total_lessons"`
	CompletedLessons int        `json:"completed_lessons"`
	Progress         int        `json:"progress"`   // rounded mean, 0-100
	TimeSpent        int64      `json:"time_spent"` // seconds
	LastAccessed     *time.Time `json:"last_accessed,omitempty"`
}
