package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client lists repositories and commits through the GitHub REST API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	perPage    int
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithBaseURL points the client at a GitHub Enterprise API root
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw == "" {
			return
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		if parsed, err := url.Parse(raw); err == nil {
			c.baseURL = parsed
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPerPage sets the page size; only the first page is read
func WithPerPage(perPage int) Option {
	return func(c *Client) {
		if perPage > 0 {
			c.perPage = perPage
		}
	}
}

func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// createAuthenticatedClient creates a GitHub client with the provided token
func (c *Client) createAuthenticatedClient(ctx context.Context, token string) *github.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = c.httpClient.Timeout

	client := github.NewClient(tc)
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client
}

// ListProjects returns repositories the user owns, collaborates on or reaches
// through an organization
func (c *Client) ListProjects(ctx context.Context, creds models.Credentials) ([]models.Project, error) {
	if err := c.wait(ctx, "repositories"); err != nil {
		return nil, err
	}

	client := c.createAuthenticatedClient(ctx, creds.Token)
	opt := &github.RepositoryListOptions{
		Affiliation: "owner,collaborator,organization_member",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	repos, _, err := client.Repositories.List(ctx, "", opt)
	if err != nil {
		return nil, translateError(err, "repositories")
	}

	projects := make([]models.Project, 0, len(repos))
	for _, repo := range repos {
		projects = append(projects, models.Project{
			ID:   repo.GetID(),
			Name: repo.GetName(),
			Path: repo.GetFullName(),
		})
	}
	return projects, nil
}

// ListCommits returns the commits of one repository authored inside window
func (c *Client) ListCommits(ctx context.Context, creds models.Credentials, project models.Project, window models.DateWindow) ([]models.RawCommit, error) {
	resource := "commits for project " + project.Name

	owner, repo, err := parseRepoFullName(project.Path)
	if err != nil {
		return nil, err
	}
	if err := c.wait(ctx, resource); err != nil {
		return nil, err
	}

	client := c.createAuthenticatedClient(ctx, creds.Token)
	opt := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}
	if window.Start != nil {
		opt.Since = window.Start.UTC()
	}
	if window.End != nil {
		opt.Until = window.End.UTC()
	}

	commits, _, err := client.Repositories.ListCommits(ctx, owner, repo, opt)
	if err != nil {
		if isEmptyRepository(err) {
			return []models.RawCommit{}, nil
		}
		return nil, translateError(err, resource)
	}

	result := make([]models.RawCommit, 0, len(commits))
	for _, commit := range commits {
		var email *string
		author := commit.GetCommit().GetAuthor()
		if author != nil {
			email = author.Email
		}
		result = append(result, models.RawCommit{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			AuthorEmail: email,
			CreatedAt:   author.GetDate().Time,
			Title:       commitTitle(commit.GetCommit().GetMessage()),
		})
	}
	return result, nil
}

func (c *Client) wait(ctx context.Context, resource string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &models.TransportError{Op: "fetch " + resource, Err: err}
	}
	return nil
}

// commitTitle mirrors GitLab's title field: the first line of the message
func commitTitle(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// GitHub answers 409 when listing commits of a repository with no commits
func isEmptyRepository(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusConflict
}

func translateError(err error, resource string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &models.APIError{StatusCode: statusOf(rateErr.Response), Message: rateErr.Message, Resource: resource}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &models.APIError{StatusCode: statusOf(abuseErr.Response), Message: abuseErr.Message, Resource: resource}
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		status := statusOf(errResp.Response)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &models.AuthError{StatusCode: status, Message: errResp.Message}
		}
		return &models.APIError{StatusCode: status, Message: errResp.Message, Resource: resource}
	}

	return &models.TransportError{Op: "fetch " + resource, Err: err}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func parseRepoFullName(fullName string) (owner, repo string, err error) {
	lastSlash := strings.LastIndex(fullName, "/")
	if lastSlash <= 0 || lastSlash == len(fullName)-1 {
		return "", "", fmt.Errorf("invalid repository name format: %q", fullName)
	}
	return fullName[:lastSlash], fullName[lastSlash+1:], nil
}
