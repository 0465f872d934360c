package services

import (
	"context"
	"fmt"
	"math"

	"academy/models"

	"gorm.io/gorm"
)

// CourseStats are the enrollment figures of one course
type CourseStats struct {
	CourseID    uint    `json:"course_id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Enrollments int64   `json:"enrollments"`
	Completions int64   `json:"completions"`
	AvgProgress float64 `json:"avg_progress"`
}

// GlobalStats are table-wide totals
type GlobalStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalLessons     int64 `json:"total_lessons"`
	TotalEnrollments int64 `json:"total_enrollments"`
	TotalCompletions int64 `json:"total_completions"`
}

// Dashboard is the admin landing page payload
type Dashboard struct {
	GlobalStats
	RecentUsers       []models.User        `json:"recent_users"`
	RecentEnrollments []EnrollmentActivity `json:"recent_enrollments"`
	CourseStats       []CourseStats        `json:"course_stats"`
}

// Statistics derives reporting figures on demand. Nothing is cached; separate
// counts are not read in a single snapshot.
type Statistics struct {
	db      *gorm.DB
	tracker *Tracker
}

func NewStatistics(db *gorm.DB, tracker *Tracker) *Statistics {
	return &Statistics{db: db, tracker: tracker}
}

// CourseStatistics computes enrollments, completions and the average
// percentage (two decimals, zero when nobody is enrolled) for one course.
func (s *Statistics) CourseStatistics(ctx context.Context, courseID uint) (*CourseStats, error) {
	db := s.db.WithContext(ctx)
	course, err := findCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	return courseStats(db, course)
}

// AllCourseStatistics returns CourseStatistics for every course in id order
func (s *Statistics) AllCourseStatistics(ctx context.Context) ([]CourseStats, error) {
	db := s.db.WithContext(ctx)

	var courses []models.Course
	if err := db.Order("id asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	out := make([]CourseStats, 0, len(courses))
	for i := range courses {
		stats, err := courseStats(db, &courses[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *stats)
	}
	return out, nil
}

func (s *Statistics) GlobalStatistics(ctx context.Context) (*GlobalStats, error) {
	db := s.db.WithContext(ctx)
	var g GlobalStats

	counts := []struct {
		model interface{}
		dest  *int64
		where []interface{}
	}{
		{&models.User{}, &g.TotalUsers, nil},
		{&models.Course{}, &g.TotalCourses, nil},
		{&models.Lesson{}, &g.TotalLessons, nil},
		{&models.Progress{}, &g.TotalEnrollments, nil},
		{&models.Progress{}, &g.TotalCompletions, []interface{}{"completed = ?", true}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %T: %w", c.model, err)
		}
	}
	return &g, nil
}

// Dashboard bundles the totals with the latest users and enrollments
func (s *Statistics) Dashboard(ctx context.Context) (*Dashboard, error) {
	global, err := s.GlobalStatistics(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(5).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}

	recent, err := s.tracker.RecentEnrollments(ctx, 10)
	if err != nil {
		return nil, err
	}

	perCourse, err := s.AllCourseStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		GlobalStats:       *global,
		RecentUsers:       users,
		RecentEnrollments: recent,
		CourseStats:       perCourse,
	}, nil
}

func courseStats(db *gorm.DB, course *models.Course) (*CourseStats, error) {
	stats := CourseStats{CourseID: course.ID, Title: course.Title, Slug: course.Slug}

	base := db.Model(&models.Progress{}).Where("course_id = ?", course.ID)
	if err := base.Session(&gorm.Session{}).Count(&stats.Enrollments).Error; err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("completed = ?", true).Count(&stats.Completions).Error; err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	var sum int64
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(progress_percentage), 0)").Scan(&sum).Error; err != nil {
		return nil, fmt.Errorf("sum progress: %w", err)
	}
	stats.AvgProgress = averagePercentage(sum, stats.Enrollments)
	return &stats, nil
}

// averagePercentage rounds to two decimals and is zero for an empty course
func averagePercentage(sum, n int64) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
