package models

// DisplayRow is one (day, project) group ready for rendering
type DisplayRow struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ProjectName string `json:"projectName"`
	Commits     string `json:"commits"`
}
