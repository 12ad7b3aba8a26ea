package services

import (
	"context"
	"sync"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
)

// fakeRemote serves canned projects and commits and records every call
type fakeRemote struct {
	mu           sync.Mutex
	projects     []models.Project
	commits      map[int64][]models.RawCommit
	projectsErr  error
	commitErrs   map[int64]error
	delays       map[int64]time.Duration
	projectCalls int
	commitCalls  []int64
}

func (f *fakeRemote) ListProjects(ctx context.Context, creds models.Credentials) ([]models.Project, error) {
	f.mu.Lock()
	f.projectCalls++
	f.mu.Unlock()

	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return f.projects, nil
}

func (f *fakeRemote) ListCommits(ctx context.Context, creds models.Credentials, project models.Project, window models.DateWindow) ([]models.RawCommit, error) {
	f.mu.Lock()
	f.commitCalls = append(f.commitCalls, project.ID)
	f.mu.Unlock()

	if d := f.delays[project.ID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.commitErrs[project.ID]; err != nil {
		return nil, err
	}
	return f.commits[project.ID], nil
}

func (f *fakeRemote) calls() (int, []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projectCalls, append([]int64(nil), f.commitCalls...)
}

func email(s string) *string {
	return &s
}

func commitAt(project models.Project, at string, title string, author *string) models.RawCommit {
	createdAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	return models.RawCommit{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		AuthorEmail: author,
		CreatedAt:   createdAt,
		Title:       title,
	}
}
