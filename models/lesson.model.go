package models

import "time"

// Lesson is a unit of course content. OrderIndex sequences lessons within
// their course but is neither unique nor contiguous.
type Lesson struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	VideoURL   string    `json:"video_url" gorm:"size:500"`
	Duration   string    `json:"duration" gorm:"size:50"`
	OrderIndex int       `json:"order_index" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
