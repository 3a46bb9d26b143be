// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// ResourceType enumerates the kinds of educational material the hub catalogs.
//
// GO "ENUMS":
// Go has no enum keyword. The idiom is a named string (or int) type plus
// typed constants. A named string type serializes naturally to JSON and
// stores directly as TEXT in SQLite, which is why we prefer it over iota here.
type ResourceType string

const (
	TypeVideo ResourceType = "video"
	TypePDF   ResourceType = "pdf"
	TypeLink  ResourceType = "link"
)

// Valid reports whether t is one of the three known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case TypeVideo, TypePDF, TypeLink:
		return true
	}
	return false
}

// Resource represents a cataloged educational material (a video, a PDF,
// or an external link) with its descriptive metadata.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. This is called a "struct tag" — metadata attached to fields.
//
// Tags are always stored normalized: lowercase, trimmed, no duplicates,
// at most ten entries. Normalization happens in the service layer before
// a Resource ever reaches the repository.
type Resource struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ResourceType ResourceType `json:"resource_type"`
	URL          string       `json:"url"`
	Tags         []string     `json:"tags"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Page is one bounded slice of a filtered, ordered resource collection,
// with the total-count metadata the frontend needs to render pagination.
// It is computed per request and never persisted.
type Page struct {
	Items      []Resource `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
