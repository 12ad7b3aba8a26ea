package models

import "time"

// DateWindow bounds the commits to fetch. Both ends are inclusive and a nil
// bound means the caller did not pick one.
type DateWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// NewDateWindow builds a window from two instants
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{Start: &start, End: &end}
}

func (w DateWindow) missingFields() []string {
	var missing []string
	if w.Start == nil || w.Start.IsZero() {
		missing = append(missing, "start")
	}
	if w.End == nil || w.End.IsZero() {
		missing = append(missing, "end")
	}
	return missing
}
