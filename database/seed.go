package database

import (
	"context"
	"fmt"
	"os"

	"academy/config"
	"academy/logger"
	"academy/services"

	"gopkg.in/yaml.v3"
)

// SeedCourse is one course entry of a seed catalog file
type SeedCourse struct {
	Title       string       `yaml:"title"`
	Slug        string       `yaml:"slug"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Difficulty  string       `yaml:"difficulty"`
	Duration    string       `yaml:"duration"`
	Image       string       `yaml:"image"`
	Content     string       `yaml:"content"`
	Draft       bool         `yaml:"draft"`
	Lessons     []SeedLesson `yaml:"lessons"`
}

type SeedLesson struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	VideoURL string `yaml:"video_url"`
	Duration string `yaml:"duration"`
}

// SeedCatalog is the document loaded from SEED_FILE
type SeedCatalog struct {
	Courses []SeedCourse `yaml:"courses"`
}

// DefaultCatalog is used when no seed file is configured
func DefaultCatalog() SeedCatalog {
	return SeedCatalog{Courses: []SeedCourse{{
		Title:       "Machine Learning Fundamentals",
		Slug:        "machine-learning",
		Description: "Master the basics of Machine Learning including supervised and unsupervised learning algorithms.",
		Category:    "Machine Learning",
		Difficulty:  "Beginner",
		Duration:    "8 weeks",
		Image:       "🤖",
		Content:     "<h2>Course Overview</h2><p>Learn machine learning fundamentals.</p>",
	}}}
}

// LoadSeedCatalog parses a YAML catalog file
func LoadSeedCatalog(path string) (SeedCatalog, error) {
	var catalog SeedCatalog
	raw, err := os.ReadFile(path)
	if err != nil {
		return catalog, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return catalog, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return catalog, nil
}

// Seed creates the admin account if missing and fills an empty catalog
func Seed(ctx context.Context, svc *services.Services, cfg *config.Config) error {
	log := logger.Named("seed")

	admin, created, err := svc.Identity.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Infow("admin user created", "username", admin.Username)
	}

	existing, err := svc.Catalog.ListCourses(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := DefaultCatalog()
	if cfg.SeedFile != "" {
		if catalog, err = LoadSeedCatalog(cfg.SeedFile); err != nil {
			return err
		}
	}

	if err := SeedCourses(ctx, svc.Catalog, catalog); err != nil {
		return err
	}
	log.Infow("database initialized with sample courses", "courses", len(catalog.Courses))
	return nil
}

// SeedCourses inserts every course of the catalog with its lessons in file order
func SeedCourses(ctx context.Context, catalog *services.Catalog, seed SeedCatalog) error {
	for _, sc := range seed.Courses {
		course, err := catalog.CreateCourse(ctx, services.CourseInput{
			Title:       sc.Title,
			Slug:        sc.Slug,
			Description: sc.Description,
			Category:    sc.Category,
			Difficulty:  sc.Difficulty,
			Duration:    sc.Duration,
			Image:       sc.Image,
			Content:     sc.Content,
			IsPublished: !sc.Draft,
		})
		if err != nil {
			return fmt.Errorf("seed course %q: %w", sc.Slug, err)
		}

		for _, sl := range sc.Lessons {
			if _, err := catalog.CreateLesson(ctx, course.ID, services.LessonInput{
				Title:    sl.Title,
				Content:  sl.Content,
				VideoURL: sl.VideoURL,
				Duration: sl.Duration,
			}); err != nil {
				return fmt.Errorf("seed lesson %q: %w", sl.Title, err)
			}
		}
	}
	return nil
}
