package models

import "time"

const (
	ProgressEnrolled  = 0
	ProgressCompleted = 100
)

// Progress is the enrollment record linking a user to a course
type Progress struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID           uint      `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;index;not null"`
	Completed          bool      `json:"completed" gorm:"default:false"`
	ProgressPercentage int       `json:"progress_percentage" gorm:"default:0"`
	LastAccessed       time.Time `json:"last_accessed"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName keeps the singular table name used by reports
func (Progress) TableName() string {
	return "progress"
}
