package services

import (
	"context"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CommitCollector lists every project once and then every project's commits
type CommitCollector struct {
	client      RemoteClient
	concurrency int
}

// NewCommitCollector creates a collector. concurrency <= 1 fetches projects one after another.
func NewCommitCollector(client RemoteClient, concurrency int) *CommitCollector {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CommitCollector{
		client:      client,
		concurrency: concurrency,
	}
}

// Collect returns all commits in window, in project listing order and then API order.
// Any failure aborts the whole collection.
func (c *CommitCollector) Collect(ctx context.Context, log *logrus.Entry, creds models.Credentials, window models.DateWindow) ([]models.RawCommit, error) {
	projects, err := c.client.ListProjects(ctx, creds)
	if err != nil {
		return nil, err
	}
	log.WithField("projects", len(projects)).Debug("Listed projects")

	// One slot per project keeps the merge order independent of completion order
	perProject := make([][]models.RawCommit, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, project := range projects {
		i, project := i, project
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			commits, err := c.client.ListCommits(gctx, creds, project, window)
			if err != nil {
				log.WithError(err).WithField("project_id", project.ID).Warn("Failed to list commits")
				return err
			}
			log.WithFields(logrus.Fields{
				"project_id": project.ID,
				"commits":    len(commits),
			}).Debug("Listed commits")
			perProject[i] = commits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.RawCommit
	for _, commits := range perProject {
		all = append(all, commits...)
	}
	return all, nil
}
