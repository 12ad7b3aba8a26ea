package models

import (
	"strings"
	"time"
)

// RawCommit is a single commit as returned by the remote, tagged with the
// project it was listed under
type RawCommit struct {
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	AuthorEmail *string   `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
}

// AuthoredBy reports whether the commit author email equals email, ignoring case.
// A commit without an author email never matches.
func (c RawCommit) AuthoredBy(email string) bool {
	if c.AuthorEmail == nil {
		return false
	}
	return strings.EqualFold(*c.AuthorEmail, email)
}
