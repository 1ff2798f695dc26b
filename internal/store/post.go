package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sheetpress/internal/models"
	"sheetpress/internal/sheets"
	"sheetpress/internal/slug"
)

// PostStore handles all blog-post operations against the posts tab.
//
// There is no caching: every call re-reads the full table, trading
// latency for freshness. The backing store offers no transactions, so
// concurrent updates to the same post are last-write-wins at row
// granularity.
type PostStore struct {
	client sheets.Client
	tab    string
}

// NewPostStore creates a PostStore reading and writing the given tab.
func NewPostStore(client sheets.Client, tab string) *PostStore {
	return &PostStore{client: client, tab: tab}
}

// scan reads the whole table and decodes every non-blank row. Row indexes
// are taken from the pre-filter position so that cleared rows in the
// middle of the table never shift the addresses of the rows below them.
func (s *PostStore) scan(ctx context.Context) ([]models.BlogPost, error) {
	rng := sheets.DataRange(s.tab, len(postColumns), sheets.DataStartRow, 0)
	rows, err := s.client.Read(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}

	posts := make([]models.BlogPost, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		posts = append(posts, decodePost(row, sheets.DataStartRow+i))
	}
	return posts, nil
}

// ListAll returns every post in row order, drafts included.
func (s *PostStore) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	return s.scan(ctx)
}

// ListPublished returns published posts ordered by descending effective
// date (publishedAt, falling back to updatedAt, then createdAt). Ties
// keep their original row order.
func (s *PostStore) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if p.IsPublished() {
			published = append(published, p)
		}
	}

	// ISO-8601 timestamps compare correctly as strings.
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].EffectiveDate() > published[j].EffectiveDate()
	})
	return published, nil
}

// FindByID returns the post with the given id, or nil if none exists.
// Duplicates are possible (the store enforces no uniqueness); the lowest
// row wins.
func (s *PostStore) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	posts, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// FindBySlug returns the first post with the given slug, or nil if none exists.
func (s *PostStore) FindBySlug(ctx context.Context, slugVal string) (*models.BlogPost, error) {
	posts, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slugVal {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// Create validates the payload, fills defaults, appends a new row, and
// returns the stored post with its assigned row address.
func (s *PostStore) Create(ctx context.Context, input models.PostInput) (*models.BlogPost, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := models.ParseStatus(input.Status)
	now := nowISO()

	publishedAt := input.PublishedAt
	if publishedAt == "" && status == models.StatusPublished {
		publishedAt = now
	}

	post := models.BlogPost{
		ID:              id,
		Slug:            ensureSlug(input.Slug, input.Title),
		Title:           input.Title,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Outline:         normalizeList(input.Outline),
		Content:         input.Content,
		Tags:            normalizeList(input.Tags),
		Status:          status,
		CoverImage:      input.CoverImage,
		CreatedAt:       now,
		UpdatedAt:       now,
		PublishedAt:     publishedAt,
		Author:          input.Author,
	}

	assigned, err := s.client.Append(ctx, sheets.AppendRange(s.tab), encodePost(&post))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.RowIndex = assigned
	return &post, nil
}

// Update applies a merge patch to the post with the given id: fields
// present in the patch override, absent fields are preserved. The slug is
// re-derived from the effective title whenever slug or title changes, and
// publishedAt is stamped exactly once on the first transition into
// published without an explicit date. Returns nil if the id is unknown.
//
// The full row is written back at its existing address; two concurrent
// updates both read the prior state and the later write wins.
func (s *PostStore) Update(ctx context.Context, id string, patch models.PostPatch) (*models.BlogPost, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated := *existing

	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.MetaTitle != nil {
		updated.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		updated.MetaDescription = *patch.MetaDescription
	}
	if patch.Outline != nil {
		updated.Outline = normalizeList(*patch.Outline)
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	if patch.Tags != nil {
		updated.Tags = normalizeList(*patch.Tags)
	}
	if patch.Status != nil {
		updated.Status = models.ParseStatus(*patch.Status)
	}
	if patch.CoverImage != nil {
		updated.CoverImage = *patch.CoverImage
	}
	if patch.Author != nil {
		updated.Author = *patch.Author
	}

	// Slugs never bypass normalization: re-derive from the effective
	// slug/title pair. Idempotent for unchanged canonical slugs.
	slugSource := updated.Slug
	if patch.Slug != nil {
		slugSource = *patch.Slug
	}
	updated.Slug = ensureSlug(slugSource, updated.Title)

	now := nowISO()
	updated.UpdatedAt = now

	if updated.Status == models.StatusPublished {
		switch {
		case patch.PublishedAt != nil && *patch.PublishedAt != "":
			updated.PublishedAt = *patch.PublishedAt
		case existing.PublishedAt == "":
			updated.PublishedAt = now
		}
	}

	rng := sheets.RowRange(s.tab, len(postColumns), existing.RowIndex)
	if err := s.client.Update(ctx, rng, encodePost(&updated)); err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return &updated, nil
}

// Remove clears the post's backing row and reports whether it existed.
// The row stays in the table as a blank, so other rows keep their
// addresses.
func (s *PostStore) Remove(ctx context.Context, id string) (bool, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	rng := sheets.RowRange(s.tab, len(postColumns), existing.RowIndex)
	if err := s.client.Clear(ctx, rng); err != nil {
		return false, fmt.Errorf("remove post %s: %w", id, err)
	}
	return true, nil
}

// validateInput rejects create payloads with blank required fields before
// anything touches the backing store.
func validateInput(input models.PostInput) error {
	var missing []string
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.MetaDescription) == "" {
		missing = append(missing, "metaDescription")
	}
	if strings.TrimSpace(input.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ensureSlug derives the canonical slug: the caller-supplied value when
// present (itself re-slugified), otherwise the slugified title.
func ensureSlug(supplied, title string) string {
	if strings.TrimSpace(supplied) == "" {
		return slug.Generate(title)
	}
	return slug.Generate(supplied)
}

// nowISO returns the current UTC time as an ISO-8601 string, the
// timestamp format stored in the sheet.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
