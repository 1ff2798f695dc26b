package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheetpress/internal/models"
	"sheetpress/internal/store"
)

// Posts groups the blog-post CRUD endpoints.
type Posts struct {
	posts *store.PostStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore) *Posts {
	return &Posts{posts: posts}
}

// List returns every post, drafts included. Used by the admin dashboard.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to fetch posts.")
		return
	}
	respondData(w, http.StatusOK, posts)
}

// ListPublished returns the public view: published posts, newest first by
// effective date.
func (h *Posts) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context())
	if err != nil {
		slog.Error("list published posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to fetch posts.")
		return
	}
	respondData(w, http.StatusOK, posts)
}

// Get returns a single post by id.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("fetch post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to fetch post.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}
	respondData(w, http.StatusOK, post)
}

// GetBySlug returns a single post by slug, for public post pages.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("fetch post by slug failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to fetch post.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}
	respondData(w, http.StatusOK, post)
}

// Create validates the payload and appends a new post row.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Create(r.Context(), input)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.Error("create post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to create post.")
		return
	}
	respondData(w, http.StatusCreated, post)
}

// Update applies a merge patch to an existing post.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		slog.Error("update post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to update post.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}
	respondData(w, http.StatusOK, post)
}

// Delete clears the post's backing row.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	found, err := h.posts.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("delete post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to delete post.")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
