package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alimgiray/gcommits/internal/github"
	"github.com/alimgiray/gcommits/internal/gitlab"
	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/pkg/config"
)

// RemoteClient is the source control API the collector drives
type RemoteClient interface {
	ListProjects(ctx context.Context, creds models.Credentials) ([]models.Project, error)
	ListCommits(ctx context.Context, creds models.Credentials, project models.Project, window models.DateWindow) ([]models.RawCommit, error)
}

// NewRemoteClient builds the client for the configured provider
func NewRemoteClient(cfg config.RemoteConfig) (RemoteClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderGitLab:
		return gitlab.NewClient(cfg.GitLabBaseURL,
			gitlab.WithHTTPClient(httpClient),
			gitlab.WithPerPage(cfg.PerPage),
			gitlab.WithRateLimit(cfg.RateLimit),
		), nil
	case config.ProviderGitHub:
		return github.NewClient(
			github.WithBaseURL(cfg.GitHubBaseURL),
			github.WithHTTPClient(httpClient),
			github.WithPerPage(cfg.PerPage),
			github.WithRateLimit(cfg.RateLimit),
		), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// NewAggregationServiceFromConfig wires client, collector and grouper from cfg
func NewAggregationServiceFromConfig(cfg *config.Config) (*AggregationService, error) {
	client, err := NewRemoteClient(cfg.Remote)
	if err != nil {
		return nil, err
	}

	policy, err := ParseGroupPolicy(cfg.Display.GroupBy)
	if err != nil {
		return nil, err
	}

	return NewAggregationService(
		NewCommitCollector(client, cfg.Remote.Concurrency),
		NewCommitGrouper(cfg.Display.Location(), policy),
	), nil
}
