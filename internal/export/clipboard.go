package export

import (
	"fmt"
	"strings"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/atotto/clipboard"
)

// Clipboard receives text to copy
type Clipboard interface {
	Write(text string) error
}

// SystemClipboard writes to the OS clipboard (pbcopy, xclip/xsel, or the Windows API)
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}

// Copyable fields of a row
const (
	FieldCommits = "commits"
	FieldProject = "project"
)

// CopyRow writes one field of the row with the given id to cb
func CopyRow(cb Clipboard, rows []models.DisplayRow, id int, field string) (string, error) {
	for _, row := range rows {
		if row.ID != id {
			continue
		}

		var text string
		switch strings.ToLower(field) {
		case "", FieldCommits:
			text = row.Commits
		case FieldProject:
			text = row.ProjectName
		default:
			return "", fmt.Errorf("cannot copy field %q (want %s or %s)", field, FieldCommits, FieldProject)
		}

		if err := cb.Write(text); err != nil {
			return "", err
		}
		return text, nil
	}
	return "", fmt.Errorf("row %d not found (have %d rows)", id, len(rows))
}
