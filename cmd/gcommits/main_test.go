package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/internal/repositories"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zalando/go-keyring"
)

type recordingClipboard struct {
	text string
}

func (r *recordingClipboard) Write(text string) error {
	r.text = text
	return nil
}

func newTestApp(t *testing.T) (*app, *recordingClipboard) {
	keyring.MockInit()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer glpat-ok" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "401 Unauthorized"}`))
			return
		}
		switch r.URL.Path {
		case "/projects":
			w.Write([]byte(`[{"id": 1, "name": "api"}]`))
		case "/projects/1/repository/commits":
			w.Write([]byte(`[
				{"title": "fix bug", "author_email": "dev@example.com", "created_at": "2025-07-02T09:15:00Z"},
				{"title": "add test", "author_email": "dev@example.com", "created_at": "2025-07-02T10:00:00Z"}
			]`))
		}
	}))
	t.Cleanup(server.Close)

	cb := &recordingClipboard{}
	return &app{
		cfg: &config.Config{
			Remote: config.RemoteConfig{
				Provider:      config.ProviderGitLab,
				GitLabBaseURL: server.URL,
				Concurrency:   1,
				Timeout:       5 * time.Second,
			},
			Display: config.DisplayConfig{Timezone: "UTC", GroupBy: "name"},
		},
		credentials: services.NewCredentialService(repositories.NewKeyringRepository()),
		clipboard:   cb,
	}, cb
}

func execute(a *app, args ...string) (string, error) {
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommitsCommand(t *testing.T) {
	a, cb := newTestApp(t)
	xlsxPath := filepath.Join(t.TempDir(), "rows.xlsx")

	out, err := execute(a, "commits", "-u", "alice", "-t", "glpat-ok",
		"--since", "2025-07-01", "--until", "2025-07-31", "--xlsx", xlsxPath, "--copy", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "02/07/2025")
	assert.Contains(t, out, "fix bug, add test")
	assert.Equal(t, "fix bug, add test", cb.text)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Commits")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCommitsCommandUsesStoredCredentials(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(a, "login", "--username", "alice", "--token", "glpat-ok")
	require.NoError(t, err)

	out, err := execute(a, "commits", "--since", "2025-07-01", "--until", "2025-07-31", "--json")
	require.NoError(t, err)

	var rows []models.DisplayRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "09:15", rows[0].Time)

	_, err = execute(a, "logout")
	require.NoError(t, err)

	_, err = execute(a, "commits", "--since", "2025-07-01", "--until", "2025-07-31")
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCommitsCommandMissingDates(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(a, "commits", "-u", "alice", "-t", "glpat-ok")

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"start", "end"}, validationErr.Fields)
}

func TestCommitsCommandUnauthorized(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(a, "commits", "-u", "alice", "-t", "expired", "--since", "2025-07-01", "--until", "2025-07-31")

	var authErr *models.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestLoginRequiresBothFlags(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := execute(a, "login", "--username", "alice")
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	window, err := parseWindow("2025-07-01", "2025-07-31", kolkata)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30T18:30:00Z", window.Start.UTC().Format(time.RFC3339))
	assert.Equal(t, "2025-07-31T18:29:59.999Z", window.End.UTC().Format("2006-01-02T15:04:05.000Z"))

	window, err = parseWindow("2025-07-01T10:00:00Z", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 10, window.Start.Hour())
	assert.Nil(t, window.End)

	_, err = parseWindow("July", "", time.UTC)
	assert.Error(t, err)
}
