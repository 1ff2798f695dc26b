package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sheetpress/internal/auth"
	"sheetpress/internal/handlers"
	"sheetpress/internal/models"
	"sheetpress/internal/router"
	"sheetpress/internal/sheets"
	"sheetpress/internal/store"
)

// testServer wires the full router over in-memory tables with one seeded
// admin account.
func testServer(t *testing.T) http.Handler {
	t.Helper()

	mem := sheets.NewMemory()
	mem.Seed("Posts", []string{
		"id", "slug", "title", "meta_title", "meta_description",
		"outline", "content", "tags", "status", "cover_image",
		"created_at", "updated_at", "published_at", "author",
	})
	mem.Seed("Admins", []string{"id", "email", "password_hash", "role", "active", "last_login_at"})

	posts := store.NewPostStore(mem, "Posts")
	admins := store.NewAdminStore(mem, "Admins")
	if _, err := admins.Create(context.Background(), "pat@example.com", "correct-horse", models.RoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	manager := auth.NewManager(admins, "test-secret", false)
	return router.New(manager, handlers.NewAuth(manager), handlers.NewPosts(posts))
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// login signs in the seeded admin and returns the bearer token.
func login(t *testing.T, h http.Handler) string {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "pat@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}
	return token
}

func TestLogin(t *testing.T) {
	h := testServer(t)

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "pat@example.com"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "pat@example.com",
			"password": "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("success sets session cookie", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "pat@example.com",
			"password": "correct-horse",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var sessionCookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.CookieName {
				sessionCookie = c
			}
		}
		if sessionCookie == nil || sessionCookie.Value == "" {
			t.Fatal("session cookie not set")
		}
		if !sessionCookie.HttpOnly || sessionCookie.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie attributes: %+v", sessionCookie)
		}
	})
}

func TestSessionEndpoint(t *testing.T) {
	h := testServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/auth/login", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}

	token := login(t, h)
	w = doJSON(t, h, http.MethodGet, "/api/auth/login", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["authenticated"] != true {
		t.Errorf("body = %v", body)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := testServer(t)

	w := doJSON(t, h, http.MethodPost, "/api/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != auth.CookieName || cookies[0].MaxAge >= 0 {
		t.Errorf("cookies = %+v, want expired session cookie", cookies)
	}
}

func TestPostMutationsRequireSession(t *testing.T) {
	h := testServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/some-id"},
		{http.MethodDelete, "/api/posts/some-id"},
	} {
		w := doJSON(t, h, tc.method, tc.path, "", map[string]string{})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestPostCRUD(t *testing.T) {
	h := testServer(t)
	token := login(t, h)

	// Create.
	w := doJSON(t, h, http.MethodPost, "/api/posts", token, map[string]any{
		"title":           "Hello World",
		"metaDescription": "A greeting.",
		"content":         "Hello there.",
		"status":          "published",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)["data"].(map[string]any)
	id := created["id"].(string)
	if created["slug"] != "hello-world" {
		t.Errorf("slug = %v", created["slug"])
	}

	// Read by id (public).
	w = doJSON(t, h, http.MethodGet, "/api/posts/"+id, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// Read by slug (public).
	w = doJSON(t, h, http.MethodGet, "/api/posts/slug/hello-world", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by slug status = %d", w.Code)
	}

	// Published view contains it.
	w = doJSON(t, h, http.MethodGet, "/api/published", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("published status = %d", w.Code)
	}
	if data := decodeBody(t, w)["data"].([]any); len(data) != 1 {
		t.Errorf("published len = %d, want 1", len(data))
	}

	// Merge-patch update.
	w = doJSON(t, h, http.MethodPut, "/api/posts/"+id, token, map[string]any{
		"content": "Rewritten.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["data"].(map[string]any)
	if updated["content"] != "Rewritten." || updated["title"] != "Hello World" {
		t.Errorf("merge patch result: %v", updated)
	}

	// Delete.
	w = doJSON(t, h, http.MethodDelete, "/api/posts/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/api/posts/"+id, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestPostValidation(t *testing.T) {
	h := testServer(t)
	token := login(t, h)

	w := doJSON(t, h, http.MethodPost, "/api/posts", token, map[string]any{
		"title": "No Body",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPostNotFound(t *testing.T) {
	h := testServer(t)
	token := login(t, h)

	w := doJSON(t, h, http.MethodGet, "/api/posts/missing-id", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want 404", w.Code)
	}

	w = doJSON(t, h, http.MethodPut, "/api/posts/missing-id", token, map[string]any{})
	if w.Code != http.StatusNotFound {
		t.Errorf("update status = %d, want 404", w.Code)
	}

	w = doJSON(t, h, http.MethodDelete, "/api/posts/missing-id", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want 404", w.Code)
	}
}

func TestHealth(t *testing.T) {
	h := testServer(t)
	w := doJSON(t, h, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
