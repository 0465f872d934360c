package models

import "time"

// User is a learner or administrator account
type User struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Username    string       `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email       string       `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password    string       `json:"-" gorm:"size:200;not null"` // bcrypt hash
	IsAdmin     bool         `json:"is_admin" gorm:"default:false"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Progress    []Progress   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	QuizResults []QuizResult `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
