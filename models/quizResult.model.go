package models

import "time"

// QuizResult is one immutable entry of the quiz ledger
type QuizResult struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	CourseID       uint      `json:"course_id" gorm:"index;not null"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	CompletedAt    time.Time `json:"completed_at" gorm:"index"`
}
