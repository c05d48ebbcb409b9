package models

import "time"

// FileEntry describes one entry in a client's site directory.
type FileEntry struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"` // "directory" or "file"
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}
