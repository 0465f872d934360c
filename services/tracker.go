package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy/logger"
	"academy/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var progressKey = []clause.Column{{Name: "user_id"}, {Name: "course_id"}}

// Enrollment pairs a learner's progress row with its course
type Enrollment struct {
	Course   models.Course   `json:"course"`
	Progress models.Progress `json:"progress"`
}

// EnrollmentActivity is a progress row annotated for the admin dashboard
type EnrollmentActivity struct {
	models.Progress
	Username    string `json:"username"`
	CourseTitle string `json:"course_title"`
}

// Tracker owns the per (user, course) enrollment state:
// not enrolled -> enrolled (0%) -> completed (100%). Completed never regresses.
type Tracker struct {
	db     *gorm.DB
	ledger *Ledger
	log    *zap.SugaredLogger
	Clock  func() time.Time
}

func NewTracker(db *gorm.DB, ledger *Ledger) *Tracker {
	return &Tracker{db: db, ledger: ledger, log: logger.Named("tracker"), Clock: time.Now}
}

// Enroll creates the enrollment if it does not exist. When the pair is
// already enrolled (in any state) the stored row is returned untouched and
// alreadyEnrolled is true.
func (s *Tracker) Enroll(ctx context.Context, actor *Actor, courseID uint) (*models.Progress, bool, error) {
	if err := RequireActor(actor); err != nil {
		return nil, false, err
	}

	var (
		progress        models.Progress
		alreadyEnrolled bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, courseID); err != nil {
			return err
		}

		progress = models.Progress{
			UserID:             actor.UserID,
			CourseID:           courseID,
			Completed:          false,
			ProgressPercentage: models.ProgressEnrolled,
			LastAccessed:       s.Clock(),
		}
		res := tx.Clauses(clause.OnConflict{Columns: progressKey, DoNothing: true}).Create(&progress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		alreadyEnrolled = true
		return tx.Where("user_id = ? AND course_id = ?", actor.UserID, courseID).First(&progress).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("enroll user %d in course %d: %w", actor.UserID, courseID, err)
	}

	if !alreadyEnrolled {
		s.log.Infow("user enrolled", "user_id", actor.UserID, "course_id", courseID)
	}
	return &progress, alreadyEnrolled, nil
}

// RecordQuizCompletion appends the attempt to the ledger and then marks the
// course completed. Any submission completes the course; the score is only
// kept as history.
func (s *Tracker) RecordQuizCompletion(ctx context.Context, actor *Actor, courseID uint, score, total int) (*models.QuizResult, *models.Progress, error) {
	if err := RequireActor(actor); err != nil {
		return nil, nil, err
	}

	var (
		result   *models.QuizResult
		progress models.Progress
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, courseID); err != nil {
			return err
		}

		var err error
		result, err = s.ledger.Append(ctx, tx, actor.UserID, courseID, score, total)
		if err != nil {
			return err
		}

		completed := models.Progress{
			UserID:             actor.UserID,
			CourseID:           courseID,
			Completed:          true,
			ProgressPercentage: models.ProgressCompleted,
			LastAccessed:       s.Clock(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   progressKey,
			DoUpdates: clause.AssignmentColumns([]string{"completed", "progress_percentage", "last_accessed"}),
		}).Create(&completed).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND course_id = ?", actor.UserID, courseID).First(&progress).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("record quiz for user %d course %d: %w", actor.UserID, courseID, err)
	}

	s.log.Infow("quiz recorded", "user_id", actor.UserID, "course_id", courseID, "score", score, "total", total)
	return result, &progress, nil
}

// GetProgress returns the enrollment row, or ErrNotFound when the user is not enrolled
func (s *Tracker) GetProgress(ctx context.Context, userID, courseID uint) (*models.Progress, error) {
	var progress models.Progress
	err := s.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &progress, nil
}

// ListEnrollments returns the user's enrollments with their courses, most recently accessed first
func (s *Tracker) ListEnrollments(ctx context.Context, userID uint) ([]Enrollment, error) {
	db := s.db.WithContext(ctx)

	var rows []models.Progress
	if err := db.Where("user_id = ?", userID).Order("last_accessed desc, id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(rows) == 0 {
		return []Enrollment{}, nil
	}

	courseIDs := make([]uint, 0, len(rows))
	for _, p := range rows {
		courseIDs = append(courseIDs, p.CourseID)
	}
	var courses []models.Course
	if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	byID := make(map[uint]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := make([]Enrollment, 0, len(rows))
	for _, p := range rows {
		course, ok := byID[p.CourseID]
		if !ok {
			continue
		}
		out = append(out, Enrollment{Course: course, Progress: p})
	}
	return out, nil
}

// RecentEnrollments lists the latest touched enrollments across all users
func (s *Tracker) RecentEnrollments(ctx context.Context, limit int) ([]EnrollmentActivity, error) {
	var out []EnrollmentActivity
	if err := s.db.WithContext(ctx).
		Table("progress").
		Select("progress.*, users.username AS username, courses.title AS course_title").
		Joins("JOIN users ON users.id = progress.user_id").
		Joins("JOIN courses ON courses.id = progress.course_id").
		Order("progress.last_accessed desc, progress.id desc").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("recent enrollments: %w", err)
	}
	return out, nil
}
