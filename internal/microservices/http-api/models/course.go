package models

import "time"

type Course struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        *string    `json:"slug,omitempty" gorm:"uniqueIndex;size:200"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	Level       *string    `json:"level,omitempty"` // beginner, intermediate, advanced
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// association
	Modules []CourseModule `json:"modules,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is an ordered grouping of lessons within a course.
type CourseModule struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CourseID int64  `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null"`
	Position int    `json:"position" gorm:"default:0"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE;"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Lesson is the smallest content unit within a course module.
type Lesson struct {
	ID       int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ModuleID int64   `json:"module_id" gorm:"not null;index"`
	Title    string  `json:"title" gorm:"not null"`
	Position int     `json:"position" gorm:"default:0"`
	Duration *int    `json:"duration,omitempty"` // seconds of video
	VideoURL *string `json:"video_url,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
