package services

import (
	"context"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AggregationRequest is everything one run needs
type AggregationRequest struct {
	Credentials models.Credentials
	Window      models.DateWindow
	AuthorEmail string
}

// AggregationService validates input, collects commits, filters and groups them
type AggregationService struct {
	collector *CommitCollector
	grouper   *CommitGrouper
}

func NewAggregationService(collector *CommitCollector, grouper *CommitGrouper) *AggregationService {
	return &AggregationService{
		collector: collector,
		grouper:   grouper,
	}
}

// Aggregate runs one aggregation. On failure no rows are returned and the
// error is the one raised by the failing stage.
func (s *AggregationService) Aggregate(ctx context.Context, req AggregationRequest) ([]models.DisplayRow, error) {
	if err := models.ValidateAggregation(req.Credentials, req.Window); err != nil {
		return nil, err
	}

	started := time.Now()
	log := logger.ForRun(uuid.New().String()).WithFields(logrus.Fields{
		"username": req.Credentials.Username,
		"since":    req.Window.Start.UTC().Format(time.RFC3339),
		"until":    req.Window.End.UTC().Format(time.RFC3339),
		"filtered": req.AuthorEmail != "",
	})
	log.Info("Starting commit aggregation")

	commits, err := s.collector.Collect(ctx, log, req.Credentials, req.Window)
	if err != nil {
		log.WithError(err).Error("Commit aggregation failed")
		return nil, err
	}

	matching := FilterByAuthor(commits, req.AuthorEmail)
	rows := s.grouper.Group(matching)

	log.WithFields(logrus.Fields{
		"commits":  len(commits),
		"matching": len(matching),
		"rows":     len(rows),
		"duration": time.Since(started).String(),
	}).Info("Commit aggregation completed")

	return rows, nil
}
