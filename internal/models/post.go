// Package models defines the data structures that map to spreadsheet rows
// and provides the core types used throughout the application.
package models

import "strings"

// Status represents the publishing state of a blog post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ParseStatus normalizes a raw status cell to a known Status. Unrecognized
// or empty values fall back to draft rather than failing, so a hand-edited
// row can never break a table scan.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusArchived:
		return s
	default:
		return StatusDraft
	}
}

// BlogPost represents a single post backed by one spreadsheet row.
// Timestamps are ISO-8601 strings exactly as stored; an empty string means
// the timestamp was never set.
type BlogPost struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription"`
	Outline         []string `json:"outline"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	Status          Status   `json:"status"`
	CoverImage      string   `json:"coverImage,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
	PublishedAt     string   `json:"publishedAt,omitempty"`
	Author          string   `json:"author,omitempty"`

	// RowIndex is the 1-indexed position of the backing row, used only for
	// targeted update/delete. Zero means the post has not been written yet
	// (append on save). Never exposed to API consumers.
	RowIndex int `json:"-"`
}

// IsPublished returns true if the post is in published status.
func (p *BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

// EffectiveDate returns the timestamp used for ordering the published
// view: publishedAt, falling back to updatedAt, then createdAt.
// Lexical comparison of ISO-8601 strings is date-correct.
func (p *BlogPost) EffectiveDate() string {
	if p.PublishedAt != "" {
		return p.PublishedAt
	}
	if p.UpdatedAt != "" {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// PostInput is the payload accepted when creating a post. Optional fields
// left empty receive defaults; Title, MetaDescription, and Content are
// required.
type PostInput struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription"`
	Outline         []string `json:"outline,omitempty"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status,omitempty"`
	CoverImage      string   `json:"coverImage,omitempty"`
	Author          string   `json:"author,omitempty"`
	PublishedAt     string   `json:"publishedAt,omitempty"`
}

// PostPatch is a merge-patch payload for updating a post. Every field is
// independently optional: nil means "leave the stored value unchanged",
// a non-nil pointer overrides it.
type PostPatch struct {
	Title           *string   `json:"title,omitempty"`
	Slug            *string   `json:"slug,omitempty"`
	MetaTitle       *string   `json:"metaTitle,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty"`
	Outline         *[]string `json:"outline,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	Status          *string   `json:"status,omitempty"`
	CoverImage      *string   `json:"coverImage,omitempty"`
	Author          *string   `json:"author,omitempty"`
	PublishedAt     *string   `json:"publishedAt,omitempty"`
}
