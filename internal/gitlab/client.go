package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// TimestampFormat is the UTC millisecond form GitLab expects for since/until
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Client talks to the GitLab REST API v4
type Client struct {
	baseURL    string
	httpClient *http.Client
	perPage    int
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient sets the base client used underneath the bearer transport
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPerPage sets the page size requested from GitLab. Only the first page is read.
func WithPerPage(perPage int) Option {
	return func(c *Client) {
		if perPage > 0 {
			c.perPage = perPage
		}
	}
}

// WithRateLimit paces outgoing requests to rps per second
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a GitLab client for baseURL, e.g. https://gitlab.com/api/v4
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type projectResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
}

type commitResponse struct {
	ID          string     `json:"id"`
	AuthorEmail *string    `json:"author_email"`
	CreatedAt   *time.Time `json:"created_at"`
	Title       string     `json:"title"`
}

// ListProjects returns the projects the token's user is a member of
func (c *Client) ListProjects(ctx context.Context, creds models.Credentials) ([]models.Project, error) {
	query := url.Values{}
	query.Set("membership", "true")
	c.addPerPage(query)

	var projects []projectResponse
	if err := c.get(ctx, creds, "/projects", query, "projects", &projects); err != nil {
		return nil, err
	}

	result := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		result = append(result, models.Project{ID: p.ID, Name: p.Name, Path: p.PathWithNamespace})
	}
	return result, nil
}

// ListCommits returns the commits of one project created inside window, in API order
func (c *Client) ListCommits(ctx context.Context, creds models.Credentials, project models.Project, window models.DateWindow) ([]models.RawCommit, error) {
	query := url.Values{}
	if window.Start != nil {
		query.Set("since", FormatTimestamp(*window.Start))
	}
	if window.End != nil {
		query.Set("until", FormatTimestamp(*window.End))
	}
	c.addPerPage(query)

	path := "/projects/" + strconv.FormatInt(project.ID, 10) + "/repository/commits"
	resource := "commits for project " + project.Name

	var commits []commitResponse
	if err := c.get(ctx, creds, path, query, resource, &commits); err != nil {
		return nil, err
	}

	result := make([]models.RawCommit, 0, len(commits))
	for _, commit := range commits {
		if commit.CreatedAt == nil || commit.CreatedAt.IsZero() {
			return nil, &models.APIError{
				StatusCode: http.StatusOK,
				Message:    "commit " + commit.ID + " has no created_at",
				Resource:   resource,
			}
		}
		result = append(result, models.RawCommit{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			AuthorEmail: commit.AuthorEmail,
			CreatedAt:   *commit.CreatedAt,
			Title:       commit.Title,
		})
	}
	return result, nil
}

// FormatTimestamp renders t the way GitLab parses since/until
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

func (c *Client) addPerPage(query url.Values) {
	if c.perPage > 0 {
		query.Set("per_page", strconv.Itoa(c.perPage))
	}
}

// bearerClient wraps the base client with an oauth2 static token transport,
// which sends "Authorization: Bearer <token>"
func (c *Client) bearerClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = c.httpClient.Timeout
	return client
}

func (c *Client) get(ctx context.Context, creds models.Credentials, path string, query url.Values, resource string, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &models.TransportError{Op: "fetch " + resource, Err: err}
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.bearerClient(ctx, creds.Token).Do(req)
	if err != nil {
		return &models.TransportError{Op: "fetch " + resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.TransportError{Op: "read " + resource, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, body, resource)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &models.APIError{StatusCode: resp.StatusCode, Message: "invalid JSON response", Resource: resource}
	}
	return nil
}

type errorResponse struct {
	Message          json.RawMessage `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func responseError(status int, body []byte, resource string) error {
	message := errorMessage(body)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &models.AuthError{StatusCode: status, Message: message}
	}
	return &models.APIError{StatusCode: status, Message: message, Resource: resource}
}

// errorMessage extracts GitLab's message field, which is either a string or
// an object of field errors
func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}

	if len(parsed.Message) > 0 {
		var text string
		if err := json.Unmarshal(parsed.Message, &text); err == nil {
			return text
		}
		return string(parsed.Message)
	}
	if parsed.ErrorDescription != "" {
		return parsed.ErrorDescription
	}
	return parsed.Error
}
