package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academy/config"
	chatController "academy/controllers/chat"
	"academy/middleware"
	"academy/models"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	app *fiber.App
	svc *services.Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTTTL: time.Hour}
	svc := services.Init(db, bcrypt.MinCost)
	chatController.Client = nil

	app := fiber.New()
	SetupRoutes(app)
	return &testServer{t: t, app: app, svc: svc}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *testServer) user(username string, admin bool) (*models.User, string) {
	s.t.Helper()
	u, err := s.svc.Identity.Register(context.Background(), services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-" + username,
		IsAdmin:  admin,
	})
	require.NoError(s.t, err)
	token, err := middleware.GenerateJWT(u.ID, u.Username)
	require.NoError(s.t, err)
	return u, token
}

func (s *testServer) course(slug string, published bool) *models.Course {
	s.t.Helper()
	c, err := s.svc.Catalog.CreateCourse(context.Background(), services.CourseInput{
		Title:       "Course " + slug,
		Slug:        slug,
		Description: "desc",
		Category:    "AI",
		Difficulty:  "Beginner",
		Duration:    "2 weeks",
		Image:       "📘",
		Content:     "<p>content</p>",
		IsPublished: published,
	})
	require.NoError(s.t, err)
	return c
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": "alice", "email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, _ = s.do(http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": "alice", "email": "other@example.com", "password": "pw",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = s.do(http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": "bob", "email": "alice@example.com", "password": "pw",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already registered!", env.Message)

	status, env = s.do(http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": "x", "email": "not-an-email", "password": "",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fieldErrs map[string]string
	decode(t, env.Data, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "password")

	status, _ = s.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": "alice", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = s.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": "alice", "password": "wonderland"})
	require.Equal(t, fiber.StatusOK, status)
	var login struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, env.Data, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User.Username)

	status, env = s.do(http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var me models.User
	decode(t, env.Data, &me)
	assert.Equal(t, login.User.ID, me.ID)
	assert.NotContains(t, string(env.Data), "password")

	status, _ = s.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLearnerFlow(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("alice", false)
	ml := s.course("machine-learning", true)
	s.course("draft-course", false)

	status, env := s.do(http.MethodGet, "/course/list", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var listed []models.Course
	decode(t, env.Data, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "machine-learning", listed[0].Slug)

	status, _ = s.do(http.MethodGet, "/course/draft-course", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	path := fmt.Sprintf("/course/%d", ml.ID)
	status, _ = s.do(http.MethodPost, path+"/enroll", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var enrolled struct {
		AlreadyEnrolled bool            `json:"already_enrolled"`
		Progress        models.Progress `json:"progress"`
	}
	status, env = s.do(http.MethodPost, path+"/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	decode(t, env.Data, &enrolled)
	assert.False(t, enrolled.AlreadyEnrolled)
	assert.Equal(t, 0, enrolled.Progress.ProgressPercentage)

	status, env = s.do(http.MethodPost, path+"/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	decode(t, env.Data, &enrolled)
	assert.True(t, enrolled.AlreadyEnrolled)

	status, _ = s.do(http.MethodPost, path+"/quiz/submit", token, fiber.Map{"score": 5, "total": 3})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, env = s.do(http.MethodPost, path+"/quiz/submit", token, fiber.Map{"score": 2, "total": 3})
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var progress models.Progress
	status, env = s.do(http.MethodGet, path+"/progress", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	decode(t, env.Data, &progress)
	assert.True(t, progress.Completed)
	assert.Equal(t, 100, progress.ProgressPercentage)

	status, env = s.do(http.MethodGet, "/course/machine-learning", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var detail struct {
		IsEnrolled bool             `json:"is_enrolled"`
		Progress   *models.Progress `json:"progress"`
	}
	decode(t, env.Data, &detail)
	assert.True(t, detail.IsEnrolled)
	require.NotNil(t, detail.Progress)
	assert.True(t, detail.Progress.Completed)

	status, env = s.do(http.MethodGet, "/course/machine-learning", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	detail.Progress = nil
	decode(t, env.Data, &detail)
	assert.False(t, detail.IsEnrolled)
	assert.Nil(t, detail.Progress)

	status, env = s.do(http.MethodGet, "/user/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var dashboard struct {
		Enrollments []services.Enrollment `json:"enrollments"`
		QuizResults []models.QuizResult   `json:"quiz_results"`
	}
	decode(t, env.Data, &dashboard)
	require.Len(t, dashboard.Enrollments, 1)
	require.Len(t, dashboard.QuizResults, 1)
	assert.Equal(t, 2, dashboard.QuizResults[0].Score)
}

func TestQuizSubmitUnknownCourse(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("alice", false)

	status, _ := s.do(http.MethodPost, "/course/999/quiz/submit", token, fiber.Map{"score": 1, "total": 1})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, "/course/abc/enroll", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/course/999/progress", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	s := newTestServer(t)
	u, token := s.user("ghost", false)
	require.NoError(t, s.svc.Identity.DeleteUser(context.Background(), u.ID))

	status, _ := s.do(http.MethodGet, "/user/dashboard", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminCapability(t *testing.T) {
	s := newTestServer(t)
	_, learner := s.user("alice", false)

	status, _ := s.do(http.MethodGet, "/admin/dashboard", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/admin/dashboard", learner, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(http.MethodPost, "/admin/course", learner, fiber.Map{"title": "x"})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAdminCourseManagement(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.user("admin", true)

	form := fiber.Map{
		"title": "Deep Learning", "slug": "deep-learning", "description": "nets",
		"category": "AI", "difficulty": "Advanced", "duration": "6 weeks",
		"image": "🧠", "content": "<p>layers</p>",
	}
	status, env := s.do(http.MethodPost, "/admin/course", admin, form)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var course models.Course
	decode(t, env.Data, &course)
	assert.True(t, course.IsPublished)

	status, _ = s.do(http.MethodPost, "/admin/course", admin, form)
	assert.Equal(t, fiber.StatusConflict, status)

	form["slug"] = "Bad Slug"
	status, _ = s.do(http.MethodPost, "/admin/course", admin, form)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	form["slug"] = "deep-learning"
	form["is_published"] = false
	coursePath := fmt.Sprintf("/admin/course/%d", course.ID)
	status, env = s.do(http.MethodPut, coursePath, admin, form)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	decode(t, env.Data, &course)
	assert.False(t, course.IsPublished)

	for _, title := range []string{"Intro", "Backprop"} {
		status, env = s.do(http.MethodPost, coursePath+"/lesson", admin, fiber.Map{"title": title, "content": "..."})
		require.Equal(t, fiber.StatusCreated, status, env.Message)
	}

	status, env = s.do(http.MethodGet, coursePath+"/lessons", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	var lessons struct {
		Lessons   []models.Lesson `json:"lessons"`
		NextOrder int             `json:"next_order"`
	}
	decode(t, env.Data, &lessons)
	require.Len(t, lessons.Lessons, 2)
	assert.Equal(t, 1, lessons.Lessons[0].OrderIndex)
	assert.Equal(t, 2, lessons.Lessons[1].OrderIndex)
	assert.Equal(t, 3, lessons.NextOrder)

	lessonPath := fmt.Sprintf("/admin/lesson/%d", lessons.Lessons[0].ID)
	status, env = s.do(http.MethodPut, lessonPath, admin, fiber.Map{"title": "Intro v2", "content": "...", "order_index": 7})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var lesson models.Lesson
	decode(t, env.Data, &lesson)
	assert.Equal(t, 7, lesson.OrderIndex)

	status, _ = s.do(http.MethodPut, lessonPath, admin, fiber.Map{"title": "Intro", "content": "...", "video_url": "nope"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodDelete, lessonPath, admin, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(http.MethodDelete, coursePath, admin, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(http.MethodGet, coursePath, admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminStatisticsAndUsers(t *testing.T) {
	s := newTestServer(t)
	admin, adminToken := s.user("admin", true)
	alice, aliceToken := s.user("alice", false)
	course := s.course("machine-learning", true)

	path := fmt.Sprintf("/course/%d", course.ID)
	status, _ := s.do(http.MethodPost, path+"/enroll", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(http.MethodPost, path+"/quiz/submit", aliceToken, fiber.Map{"score": 0, "total": 4})
	require.Equal(t, fiber.StatusOK, status)

	status, env := s.do(http.MethodGet, "/admin/statistics", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var stats struct {
		Totals  services.GlobalStats   `json:"totals"`
		Courses []services.CourseStats `json:"courses"`
	}
	decode(t, env.Data, &stats)
	assert.EqualValues(t, 2, stats.Totals.TotalUsers)
	assert.EqualValues(t, 1, stats.Totals.TotalCompletions)
	require.Len(t, stats.Courses, 1)
	assert.Equal(t, 100.0, stats.Courses[0].AvgProgress)

	status, env = s.do(http.MethodGet, "/admin/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var dashboard services.Dashboard
	decode(t, env.Data, &dashboard)
	assert.Len(t, dashboard.RecentUsers, 2)
	require.Len(t, dashboard.RecentEnrollments, 1)
	assert.Equal(t, "alice", dashboard.RecentEnrollments[0].Username)

	status, _ = s.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", alice.ID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.do(http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var users []models.User
	decode(t, env.Data, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)

	status, env = s.do(http.MethodGet, "/admin/statistics", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	decode(t, env.Data, &stats)
	assert.EqualValues(t, 0, stats.Totals.TotalEnrollments)
	assert.Equal(t, 0.0, stats.Courses[0].AvgProgress)
}

func TestChat(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodPost, "/chat", "", fiber.Map{"message": "   "})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/chat", "", fiber.Map{"message": "hi"})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	fail := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Gradient descent!"}}]}`))
	}))
	defer upstream.Close()

	chatController.Client = utils.NewChatClient(&config.Config{
		OpenRouterAPIKey: "key",
		OpenRouterURL:    upstream.URL,
		ChatModel:        "test-model",
		ChatTimeout:      5 * time.Second,
	})
	t.Cleanup(func() { chatController.Client = nil })

	status, env := s.do(http.MethodPost, "/chat", "", fiber.Map{"message": "how do nets learn?"})
	require.Equal(t, fiber.StatusOK, status)
	var reply struct {
		Message string `json:"message"`
	}
	decode(t, env.Data, &reply)
	assert.Equal(t, "Gradient descent!", reply.Message)

	fail = true
	status, _ = s.do(http.MethodPost, "/chat", "", fiber.Map{"message": "again"})
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Status)
}
