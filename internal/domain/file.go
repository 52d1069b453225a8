package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/filedash/internal/rowfilter"
)

// File is an uploaded document listed on the dashboard.
type File struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"display_name"`
	Category         string    `json:"category"`
	OriginalFilename string    `json:"original_filename"`
	StorageKey       string    `json:"-"`
	URL              string    `json:"url"`
	UploadedBy       string    `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewFile creates a catalog entry for a stored blob.
func NewFile(displayName, category, originalFilename, storageKey, url, uploadedBy string) File {
	return File{
		ID:               uuid.New(),
		DisplayName:      displayName,
		Category:         category,
		OriginalFilename: originalFilename,
		StorageKey:       storageKey,
		URL:              url,
		UploadedBy:       uploadedBy,
		CreatedAt:        time.Now(),
	}
}

// SearchRow projects the searchable columns. Empty columns are absent.
func (f File) SearchRow() rowfilter.Row {
	return rowfilter.Row{
		Display:  optional(f.DisplayName),
		Category: optional(f.Category),
		Original: optional(f.OriginalFilename),
	}
}

func optional(s string) rowfilter.Text {
	if s == "" {
		return rowfilter.None()
	}
	return rowfilter.Some(s)
}

// FileFilter narrows a file listing.
type FileFilter struct {
	// Search is matched case-insensitively against display name, category
	// and original filename.
	Search string
}
