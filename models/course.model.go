package models

import "time"

// Course represents a published (or draft) learning course
type Course struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:200;not null"`
	Slug        string       `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Category    string       `json:"category" gorm:"size:100;not null"`
	Difficulty  string       `json:"difficulty" gorm:"size:50;not null"`
	Duration    string       `json:"duration" gorm:"size:50;not null"` // display label, e.g. "8 weeks"
	Image       string       `json:"image" gorm:"size:200;not null"`   // image URL or emoji icon
	Content     string       `json:"content" gorm:"type:text;not null"`
	IsPublished bool         `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Lessons     []Lesson     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Progress    []Progress   `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	QuizResults []QuizResult `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
