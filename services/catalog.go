package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy/logger"
	"academy/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseInput holds the editable fields of a course
type CourseInput struct {
	Title       string
	Slug        string
	Description string
	Category    string
	Difficulty  string
	Duration    string
	Image       string
	Content     string
	IsPublished bool
}

// LessonInput holds the editable fields of a lesson. A nil OrderIndex on
// create places the lesson after the current last one.
type LessonInput struct {
	Title      string
	Content    string
	VideoURL   string
	Duration   string
	OrderIndex *int
}

// Catalog manages courses and their lessons
type Catalog struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db, log: logger.Named("catalog")}
}

// ListPublishedCourses returns the public catalog in creation order
func (s *Catalog) ListPublishedCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Where("is_published = ?", true).Order("id asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}
	return courses, nil
}

// GetPublishedCourseBySlug returns a published course; drafts are reported as not found
func (s *Catalog) GetPublishedCourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).Where("slug = ? AND is_published = ?", slug, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course %q: %w", slug, err)
	}
	return &course, nil
}

// GetCourse loads any course, published or not
func (s *Catalog) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	return findCourse(s.db.WithContext(ctx), id)
}

// ListCourses returns every course, newest first
func (s *Catalog) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *Catalog) CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error) {
	db := s.db.WithContext(ctx)
	in.Slug = strings.TrimSpace(in.Slug)

	taken, err := exists(db, &models.Course{}, "slug = ?", in.Slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	course := models.Course{}
	applyCourseInput(&course, in)
	if err := db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Infow("course created", "course_id", course.ID, "slug", course.Slug)
	return &course, nil
}

// UpdateCourse replaces every editable field of the course
func (s *Catalog) UpdateCourse(ctx context.Context, id uint, in CourseInput) (*models.Course, error) {
	db := s.db.WithContext(ctx)
	course, err := findCourse(db, id)
	if err != nil {
		return nil, err
	}

	in.Slug = strings.TrimSpace(in.Slug)
	taken, err := exists(db, &models.Course{}, "slug = ? AND id <> ?", in.Slug, id)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	applyCourseInput(course, in)
	if err := db.Save(course).Error; err != nil {
		return nil, fmt.Errorf("update course %d: %w", id, err)
	}
	return course, nil
}

// DeleteCourse removes the course and every lesson, progress row and quiz
// result referencing it, in one transaction.
func (s *Catalog) DeleteCourse(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, id)
		if err != nil {
			return err
		}
		for _, dependent := range []interface{}{&models.Lesson{}, &models.Progress{}, &models.QuizResult{}} {
			if err := tx.Where("course_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete course %d: %w", id, err)
	}

	s.log.Infow("course deleted", "course_id", id)
	return nil
}

// ListLessons returns the lessons of a course in display order
func (s *Catalog) ListLessons(ctx context.Context, courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := s.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index asc, id asc").
		Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// NextLessonOrder is the current max order in the course plus one
func (s *Catalog) NextLessonOrder(ctx context.Context, courseID uint) (int, error) {
	return nextLessonOrder(s.db.WithContext(ctx), courseID)
}

func (s *Catalog) CreateLesson(ctx context.Context, courseID uint, in LessonInput) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, courseID); err != nil {
			return err
		}

		order := 0
		if in.OrderIndex != nil {
			order = *in.OrderIndex
		} else {
			next, err := nextLessonOrder(tx, courseID)
			if err != nil {
				return err
			}
			order = next
		}

		lesson = models.Lesson{
			CourseID:   courseID,
			Title:      in.Title,
			Content:    in.Content,
			VideoURL:   in.VideoURL,
			Duration:   in.Duration,
			OrderIndex: order,
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return &lesson, nil
}

func (s *Catalog) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	return findLesson(s.db.WithContext(ctx), id)
}

// UpdateLesson replaces the lesson fields. A nil OrderIndex keeps the current order.
func (s *Catalog) UpdateLesson(ctx context.Context, id uint, in LessonInput) (*models.Lesson, error) {
	db := s.db.WithContext(ctx)
	lesson, err := findLesson(db, id)
	if err != nil {
		return nil, err
	}

	lesson.Title = in.Title
	lesson.Content = in.Content
	lesson.VideoURL = in.VideoURL
	lesson.Duration = in.Duration
	if in.OrderIndex != nil {
		lesson.OrderIndex = *in.OrderIndex
	}

	if err := db.Save(lesson).Error; err != nil {
		return nil, fmt.Errorf("update lesson %d: %w", id, err)
	}
	return lesson, nil
}

// DeleteLesson removes a single lesson and returns the course it belonged to
func (s *Catalog) DeleteLesson(ctx context.Context, id uint) (uint, error) {
	db := s.db.WithContext(ctx)
	lesson, err := findLesson(db, id)
	if err != nil {
		return 0, err
	}
	if err := db.Delete(lesson).Error; err != nil {
		return 0, fmt.Errorf("delete lesson %d: %w", id, err)
	}
	return lesson.CourseID, nil
}

func applyCourseInput(course *models.Course, in CourseInput) {
	course.Title = in.Title
	course.Slug = in.Slug
	course.Description = in.Description
	course.Category = in.Category
	course.Difficulty = in.Difficulty
	course.Duration = in.Duration
	course.Image = in.Image
	course.Content = in.Content
	course.IsPublished = in.IsPublished
}

func findCourse(db *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return &course, nil
}

func findLesson(db *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson %d: %w", id, err)
	}
	return &lesson, nil
}

func nextLessonOrder(db *gorm.DB, courseID uint) (int, error) {
	var max int
	if err := db.Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("max lesson order: %w", err)
	}
	return max + 1, nil
}
