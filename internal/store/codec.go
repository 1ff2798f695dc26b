// Package store provides typed access to the spreadsheet-backed tables.
// Each store wraps the range-addressed sheets client and exposes domain
// methods over decoded records; all positional column knowledge lives in
// this package's codec.
package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"sheetpress/internal/models"
)

// Column orders are fixed contracts with the spreadsheet. Row 1 of each
// tab carries these names as its header; data cells are positional.
var (
	postColumns = []string{
		"id", "slug", "title", "meta_title", "meta_description",
		"outline", "content", "tags", "status", "cover_image",
		"created_at", "updated_at", "published_at", "author",
	}

	adminColumns = []string{
		"id", "email", "password_hash", "role", "active", "last_login_at",
	}
)

// toRecord maps a row's cells onto column names. Missing trailing cells
// read as empty strings.
func toRecord(row, columns []string) map[string]string {
	rec := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			rec[col] = row[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}

// decodePost converts one spreadsheet row into a BlogPost.
func decodePost(row []string, rowIndex int) models.BlogPost {
	rec := toRecord(row, postColumns)
	return models.BlogPost{
		RowIndex:        rowIndex,
		ID:              strings.TrimSpace(rec["id"]),
		Slug:            strings.TrimSpace(rec["slug"]),
		Title:           strings.TrimSpace(rec["title"]),
		MetaTitle:       strings.TrimSpace(rec["meta_title"]),
		MetaDescription: strings.TrimSpace(rec["meta_description"]),
		Outline:         parseList(rec["outline"]),
		Content:         strings.TrimSpace(rec["content"]),
		Tags:            parseList(rec["tags"]),
		Status:          models.ParseStatus(rec["status"]),
		CoverImage:      strings.TrimSpace(rec["cover_image"]),
		CreatedAt:       strings.TrimSpace(rec["created_at"]),
		UpdatedAt:       strings.TrimSpace(rec["updated_at"]),
		PublishedAt:     strings.TrimSpace(rec["published_at"]),
		Author:          strings.TrimSpace(rec["author"]),
	}
}

// encodePost is the exact inverse of decodePost, producing a fixed-width
// cell list in column order.
func encodePost(p *models.BlogPost) []string {
	return []string{
		p.ID,
		p.Slug,
		p.Title,
		p.MetaTitle,
		p.MetaDescription,
		serializeList(p.Outline),
		p.Content,
		serializeList(p.Tags),
		string(p.Status),
		p.CoverImage,
		p.CreatedAt,
		p.UpdatedAt,
		p.PublishedAt,
		p.Author,
	}
}

// decodeAdmin converts one spreadsheet row into an AdminUser. Emails are
// lowercased so lookups stay case-insensitive; a blank role reads as admin.
func decodeAdmin(row []string, rowIndex int) models.AdminUser {
	rec := toRecord(row, adminColumns)
	role := models.Role(strings.TrimSpace(rec["role"]))
	if role == "" {
		role = models.RoleAdmin
	}
	return models.AdminUser{
		RowIndex:     rowIndex,
		ID:           strings.TrimSpace(rec["id"]),
		Email:        strings.ToLower(strings.TrimSpace(rec["email"])),
		PasswordHash: strings.TrimSpace(rec["password_hash"]),
		Role:         role,
		Active:       parseBool(rec["active"]),
		LastLoginAt:  strings.TrimSpace(rec["last_login_at"]),
	}
}

// encodeAdmin is the exact inverse of decodeAdmin.
func encodeAdmin(u *models.AdminUser) []string {
	return []string{
		u.ID,
		strings.ToLower(u.Email),
		u.PasswordHash,
		string(u.Role),
		serializeBool(u.Active),
		u.LastLoginAt,
	}
}

// parseList decodes a list-valued cell. Strict JSON arrays are preferred,
// but the sheet is hand-edited by non-technical operators, so anything
// that fails to parse falls back to comma/pipe/newline splitting. The
// result is never nil.
func parseList(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []string{}
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		arr, ok := parsed.([]any)
		if !ok {
			return []string{}
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == '|' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// serializeList writes a list cell as JSON-array text, or an empty cell
// for an empty list.
func serializeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	encoded, _ := json.Marshal(items)
	return string(encoded)
}

// parseBool accepts the human-entered truthy spellings; anything else,
// including an empty cell, is false.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func serializeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// isBlankRow reports whether a row has no non-blank cell. Cleared rows
// stay in the table (it never compacts) and are skipped by every scan.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// normalizeList trims each entry and drops blanks. The result is never nil.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}
