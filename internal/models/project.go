package models

// Project is a repository the user is a member of on the remote platform.
// Name is a display label and is not unique across projects; Path is the
// namespaced path ("group/api" or "owner/repo") some providers address it by.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}
