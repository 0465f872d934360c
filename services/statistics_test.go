package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseStatisticsEmptyCourse(t *testing.T) {
	svc, _ := newTestServices(t)
	course := mustCourse(t, svc, "ml-101")

	stats, err := svc.Statistics.CourseStatistics(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Enrollments)
	assert.Zero(t, stats.Completions)
	assert.Equal(t, 0.0, stats.AvgProgress)
}

func TestCourseStatisticsAverages(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	course := mustCourse(t, svc, "ml-101")

	for i, name := range []string{"alice", "bob", "carol"} {
		actor := ActorFor(mustRegister(t, svc, name))
		if i == 0 {
			_, _, err := svc.Tracker.RecordQuizCompletion(ctx, actor, course.ID, 2, 10)
			require.NoError(t, err)
			continue
		}
		_, _, err := svc.Tracker.Enroll(ctx, actor, course.ID)
		require.NoError(t, err)
	}

	stats, err := svc.Statistics.CourseStatistics(ctx, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Enrollments)
	assert.EqualValues(t, 1, stats.Completions)
	assert.Equal(t, 33.33, stats.AvgProgress)
}

func TestCourseStatisticsUnknownCourse(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Statistics.CourseStatistics(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGlobalStatisticsAndDashboard(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	alice := ActorFor(mustRegister(t, svc, "alice"))
	bob := ActorFor(mustRegister(t, svc, "bob"))
	ml := mustCourse(t, svc, "ml-101")
	dl := mustCourse(t, svc, "dl-201")
	_, err := svc.Catalog.CreateLesson(ctx, ml.ID, LessonInput{Title: "l1", Content: "c"})
	require.NoError(t, err)

	_, _, err = svc.Tracker.Enroll(ctx, alice, ml.ID)
	require.NoError(t, err)
	_, _, err = svc.Tracker.RecordQuizCompletion(ctx, bob, ml.ID, 0, 3)
	require.NoError(t, err)
	_, _, err = svc.Tracker.Enroll(ctx, bob, dl.ID)
	require.NoError(t, err)

	g, err := svc.Statistics.GlobalStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, GlobalStats{
		TotalUsers:       2,
		TotalCourses:     2,
		TotalLessons:     1,
		TotalEnrollments: 3,
		TotalCompletions: 1,
	}, *g)

	d, err := svc.Statistics.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, d.TotalEnrollments)
	assert.Len(t, d.RecentUsers, 2)
	assert.Len(t, d.RecentEnrollments, 3)
	require.Len(t, d.CourseStats, 2)
	assert.Equal(t, 50.0, d.CourseStats[0].AvgProgress)
	assert.Equal(t, 0.0, d.CourseStats[1].AvgProgress)
}

func TestAveragePercentage(t *testing.T) {
	assert.Equal(t, 0.0, averagePercentage(0, 0))
	assert.Equal(t, 66.67, averagePercentage(200, 3))
	assert.Equal(t, 100.0, averagePercentage(100, 1))
}
