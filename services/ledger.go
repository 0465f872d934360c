package services

import (
	"context"
	"fmt"
	"time"

	"academy/models"

	"gorm.io/gorm"
)

// Ledger is the append-only history of quiz attempts
type Ledger struct {
	db    *gorm.DB
	Clock func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, Clock: time.Now}
}

// Append records one attempt. Pass a transaction in tx to join it, or nil to
// use the ledger's own connection.
func (s *Ledger) Append(ctx context.Context, tx *gorm.DB, userID, courseID uint, score, total int) (*models.QuizResult, error) {
	if tx == nil {
		tx = s.db
	}

	result := models.QuizResult{
		UserID:         userID,
		CourseID:       courseID,
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    s.Clock(),
	}
	if err := tx.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, fmt.Errorf("append quiz result: %w", err)
	}
	return &result, nil
}

// ListRecent returns the user's latest results, newest first
func (s *Ledger) ListRecent(ctx context.Context, userID uint, limit int) ([]models.QuizResult, error) {
	var results []models.QuizResult
	if limit <= 0 {
		return results, nil
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at desc, id desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	return results, nil
}

// CountForPair is the number of attempts a user has made on a course
func (s *Ledger) CountForPair(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.QuizResult{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count quiz results: %w", err)
	}
	return count, nil
}
