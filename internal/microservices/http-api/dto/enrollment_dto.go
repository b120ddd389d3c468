package dto

import "time"

// EnrolledCourseResponse: an enrolled course annotated with the user's
// progress rollup for that course.
type EnrolledCourseResponse struct {
	Course     CourseResponse        `json:"course"`
	EnrolledAt time.Time             `json:"enrolled_at"`
	Progress   CourseProgressSummary `json:"progress"`
}

// EnrollmentListResponse: all of a user's enrollments, oldest first
type EnrollmentListResponse struct {
	Items []EnrolledCourseResponse `json:"items"`
	Total int                      `json:"total"`
}
