package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCreds  = models.Credentials{Username: "alice", Token: "glpat-secret"}
	testWindow = models.NewDateWindow(
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC),
	)
)

func threeProjectRemote() *fakeRemote {
	opsProject := models.Project{ID: 3, Name: "ops"}
	return &fakeRemote{
		projects: []models.Project{apiProject, webProject, opsProject},
		commits: map[int64][]models.RawCommit{
			apiProject.ID: {
				commitAt(apiProject, "2025-07-02T09:00:00Z", "a1", nil),
				commitAt(apiProject, "2025-07-02T08:00:00Z", "a2", nil),
			},
			webProject.ID: {},
			opsProject.ID: {
				commitAt(opsProject, "2025-07-04T11:00:00Z", "o1", nil),
			},
		},
	}
}

func titles(commits []models.RawCommit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.Title)
	}
	return out
}

func TestCollectPreservesProjectAndAPIOrder(t *testing.T) {
	remote := threeProjectRemote()
	collector := NewCommitCollector(remote, 1)

	commits, err := collector.Collect(context.Background(), logger.ForRun("test"), testCreds, testWindow)

	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "o1"}, titles(commits))

	projectCalls, commitCalls := remote.calls()
	assert.Equal(t, 1, projectCalls)
	assert.Equal(t, []int64{1, 2, 3}, commitCalls)
}

func TestCollectParallelMatchesSequential(t *testing.T) {
	remote := threeProjectRemote()
	// The first project finishes last
	remote.delays = map[int64]time.Duration{apiProject.ID: 50 * time.Millisecond}

	sequential, err := NewCommitCollector(threeProjectRemote(), 1).Collect(context.Background(), logger.ForRun("seq"), testCreds, testWindow)
	require.NoError(t, err)

	parallel, err := NewCommitCollector(remote, 3).Collect(context.Background(), logger.ForRun("par"), testCreds, testWindow)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestCollectProjectListFailure(t *testing.T) {
	remote := threeProjectRemote()
	remote.projectsErr = &models.AuthError{StatusCode: 401}

	commits, err := NewCommitCollector(remote, 1).Collect(context.Background(), logger.ForRun("test"), testCreds, testWindow)

	assert.Nil(t, commits)
	var authErr *models.AuthError
	assert.True(t, errors.As(err, &authErr))

	_, commitCalls := remote.calls()
	assert.Empty(t, commitCalls)
}

func TestCollectCommitFailureAbortsRun(t *testing.T) {
	remote := threeProjectRemote()
	failure := &models.APIError{StatusCode: 500, Resource: "commits for project web"}
	remote.commitErrs = map[int64]error{webProject.ID: failure}

	commits, err := NewCommitCollector(remote, 1).Collect(context.Background(), logger.ForRun("test"), testCreds, testWindow)

	assert.Nil(t, commits)
	assert.Same(t, failure, err)

	// Sequential collection stops at the failing project
	_, commitCalls := remote.calls()
	assert.Equal(t, []int64{1, 2}, commitCalls)
}

func TestCollectNoProjects(t *testing.T) {
	remote := &fakeRemote{}

	commits, err := NewCommitCollector(remote, 4).Collect(context.Background(), logger.ForRun("test"), testCreds, testWindow)

	require.NoError(t, err)
	assert.Empty(t, commits)
}
