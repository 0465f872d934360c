package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"academy/config"
	"academy/logger"
	"academy/models"
	"academy/services"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StatsDigest is the daily activity report mailed to administrators
type StatsDigest struct {
	Date           time.Time
	Global         services.GlobalStats
	NewEnrollments int64
	QuizAttempts   int64
	Courses        []services.CourseStats
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html><body style="font-family: Arial, sans-serif;">
<h2>Oguz AI Academy daily report - {{.Date.Format "2006-01-02"}}</h2>
<p>Today: {{.NewEnrollments}} new enrollments, {{.QuizAttempts}} quiz attempts.</p>
<ul>
<li>Users: {{.Global.TotalUsers}}</li>
<li>Courses: {{.Global.TotalCourses}} ({{.Global.TotalLessons}} lessons)</li>
<li>Enrollments: {{.Global.TotalEnrollments}} ({{.Global.TotalCompletions}} completed)</li>
</ul>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Course</th><th>Enrollments</th><th>Completions</th><th>Avg progress</th></tr>
{{range .Courses}}<tr><td>{{.Title}}</td><td>{{.Enrollments}}</td><td>{{.Completions}}</td><td>{{printf "%.2f" .AvgProgress}}%</td></tr>
{{end}}</table>
</body></html>`))

// BuildStatsDigest collects the totals plus the activity since the beginning of at's day
func BuildStatsDigest(ctx context.Context, db *gorm.DB, svc *services.Services, at time.Time) (*StatsDigest, error) {
	global, err := svc.Statistics.GlobalStatistics(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := svc.Statistics.AllCourseStatistics(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := now.With(at).BeginningOfDay()
	digest := &StatsDigest{Date: dayStart, Global: *global, Courses: courses}

	if err := db.WithContext(ctx).Model(&models.Progress{}).
		Where("created_at >= ?", dayStart).
		Count(&digest.NewEnrollments).Error; err != nil {
		return nil, fmt.Errorf("count new enrollments: %w", err)
	}
	if err := db.WithContext(ctx).Model(&models.QuizResult{}).
		Where("completed_at >= ?", dayStart).
		Count(&digest.QuizAttempts).Error; err != nil {
		return nil, fmt.Errorf("count quiz attempts: %w", err)
	}
	return digest, nil
}

// RenderStatsDigest produces the HTML body of the digest mail
func RenderStatsDigest(d *StatsDigest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendStatsDigest renders and mails the digest
func SendStatsDigest(mailer Mailer, recipients []string, d *StatsDigest) error {
	body, err := RenderStatsDigest(d)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	subject := fmt.Sprintf("Academy daily report %s", d.Date.Format("2006-01-02"))
	return mailer.Send(recipients, subject, body)
}

// InitializeStatsDigestScheduler runs the digest on cfg.DigestSchedule. The
// report is always logged and additionally mailed when SendGrid is configured.
func InitializeStatsDigestScheduler(db *gorm.DB, svc *services.Services, cfg *config.Config) (*cron.Cron, error) {
	log := logger.Named("stats-digest")

	var mailer Mailer
	if cfg.SendGridAPIKey != "" && len(cfg.DigestRecipients) > 0 {
		mailer = SendGridMailer{APIKey: cfg.SendGridAPIKey, From: cfg.DigestSender, FromName: "Oguz AI Academy"}
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.DigestSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		digest, err := BuildStatsDigest(ctx, db, svc, time.Now())
		if err != nil {
			log.Errorw("failed to build digest", "error", err)
			return
		}
		log.Infow("daily statistics",
			"users", digest.Global.TotalUsers,
			"enrollments", digest.Global.TotalEnrollments,
			"completions", digest.Global.TotalCompletions,
			"new_enrollments", digest.NewEnrollments,
			"quiz_attempts", digest.QuizAttempts,
		)

		if mailer == nil {
			return
		}
		if err := SendStatsDigest(mailer, cfg.DigestRecipients, digest); err != nil {
			log.Errorw("failed to send digest", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", cfg.DigestSchedule, err)
	}

	c.Start()
	log.Infow("stats digest scheduler started", "schedule", cfg.DigestSchedule, "mail", mailer != nil)
	return c, nil
}
