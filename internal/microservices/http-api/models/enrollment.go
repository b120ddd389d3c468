package models

import "time"

type Enrollment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID   int64     `gorm:"not null;index;uniqueIndex:idx_user_course" json:"course_id"`
	EnrolledAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"enrolled_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
