package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/gcommits/internal/models"
)

const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// GroupPolicy decides whether projects sharing a name share a row
type GroupPolicy string

const (
	// GroupByName merges same-named projects on the same day
	GroupByName GroupPolicy = "name"
	// GroupByID keeps every project apart even when names collide
	GroupByID GroupPolicy = "id"
)

// ParseGroupPolicy accepts "name" or "id"; empty means name
func ParseGroupPolicy(value string) (GroupPolicy, error) {
	switch GroupPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", GroupByName:
		return GroupByName, nil
	case GroupByID:
		return GroupByID, nil
	default:
		return "", fmt.Errorf("unknown group policy %q (want name or id)", value)
	}
}

// GroupKey identifies one row: a calendar day in the display location and a project
type GroupKey struct {
	Year        int
	Month       time.Month
	Day         int
	ProjectName string
	ProjectID   int64
}

type commitGroup struct {
	date        string
	time        string
	projectName string
	titles      []string
}

// CommitGrouper turns raw commits into display rows
type CommitGrouper struct {
	location *time.Location
	policy   GroupPolicy
}

func NewCommitGrouper(location *time.Location, policy GroupPolicy) *CommitGrouper {
	if location == nil {
		location = time.UTC
	}
	if policy == "" {
		policy = GroupByName
	}
	return &CommitGrouper{
		location: location,
		policy:   policy,
	}
}

func (g *CommitGrouper) keyFor(commit models.RawCommit) GroupKey {
	year, month, day := commit.CreatedAt.In(g.location).Date()
	key := GroupKey{
		Year:        year,
		Month:       month,
		Day:         day,
		ProjectName: commit.ProjectName,
	}
	if g.policy == GroupByID {
		key.ProjectID = commit.ProjectID
	}
	return key
}

// Group buckets commits by day and project. Rows come out in the order their
// first commit was seen, numbered from 1. A row's time is the UTC time of
// its first commit; later commits only add titles.
func (g *CommitGrouper) Group(commits []models.RawCommit) []models.DisplayRow {
	index := make(map[GroupKey]*commitGroup)
	var order []*commitGroup

	for _, commit := range commits {
		key := g.keyFor(commit)
		if group, ok := index[key]; ok {
			group.titles = append(group.titles, commit.Title)
			continue
		}

		group := &commitGroup{
			date:        commit.CreatedAt.In(g.location).Format(DateLayout),
			time:        commit.CreatedAt.UTC().Format(TimeLayout),
			projectName: commit.ProjectName,
			titles:      []string{commit.Title},
		}
		index[key] = group
		order = append(order, group)
	}

	rows := make([]models.DisplayRow, 0, len(order))
	for i, group := range order {
		rows = append(rows, models.DisplayRow{
			ID:          i + 1,
			Date:        group.date,
			Time:        group.time,
			ProjectName: group.projectName,
			Commits:     strings.Join(group.titles, ", "),
		})
	}
	return rows
}
