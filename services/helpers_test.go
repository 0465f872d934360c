package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"academy/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// testClock hands out strictly increasing timestamps
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := New(db, bcrypt.MinCost)

	clock := &testClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	svc.Ledger.Clock = clock.Now
	svc.Tracker.Clock = clock.Now
	return svc, db
}

func mustRegister(t *testing.T, svc *Services, username string) *models.User {
	t.Helper()
	u, err := svc.Identity.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	return u
}

func mustCourse(t *testing.T, svc *Services, slug string) *models.Course {
	t.Helper()
	c, err := svc.Catalog.CreateCourse(context.Background(), CourseInput{
		Title:       strings.ToUpper(slug),
		Slug:        slug,
		Description: "about " + slug,
		Category:    "AI",
		Difficulty:  "Beginner",
		Duration:    "4 weeks",
		Image:       "🤖",
		Content:     "<p>" + slug + "</p>",
		IsPublished: true,
	})
	require.NoError(t, err)
	return c
}
