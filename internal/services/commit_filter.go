package services

import "github.com/alimgiray/gcommits/internal/models"

// FilterByAuthor keeps commits whose author email equals email, ignoring case.
// An empty email keeps everything; any other value, whitespace included, is
// compared as given.
func FilterByAuthor(commits []models.RawCommit, email string) []models.RawCommit {
	if email == "" {
		return commits
	}

	filtered := make([]models.RawCommit, 0, len(commits))
	for _, commit := range commits {
		if commit.AuthoredBy(email) {
			filtered = append(filtered, commit)
		}
	}
	return filtered
}
