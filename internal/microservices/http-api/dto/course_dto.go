package dto

import "time"

// CourseResponse: course metadata without the lesson tree, for listings.
type CourseResponse struct {
	ID          int64      `json:"id"`
	Slug        *string    `json:"slug,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Level       *string    `json:"level,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CourseListResponse: paginated course listing
type CourseListResponse struct {
	Items    []CourseResponse `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// CreateCourseRequest: payload for publishing a course with its full
// module -> lesson tree. Positions are assigned from array order.
type CreateCourseRequest struct {
	Slug        *string               `json:"slug,omitempty"`
	Title       string                `json:"title" binding:"required"`
	Description *string               `json:"description,omitempty"`
	Level       *string               `json:"level,omitempty"`
	Modules     []CreateModuleRequest `json:"modules" binding:"dive"`
}

type CreateModuleRequest struct {
	Title   string                `json:"title" binding:"required"`
	Lessons []CreateLessonRequest `json:"lessons" binding:"dive"`
}

type CreateLessonRequest struct {
	Title    string  `json:"title" binding:"required"`
	Duration *int    `json:"duration,omitempty"`
	VideoURL *string `json:"video_url,omitempty"`
}
