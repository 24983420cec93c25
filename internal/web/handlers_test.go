package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rscole87/nucamp/internal/db"
)

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestHomeRedirectsToDirectory(t *testing.T) {
	srv := testServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/directory" {
		t.Errorf("location = %q, want /directory", loc)
	}
}

func TestHandleDirectory(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/directory", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Chrome River Campground") {
		t.Error("expected campsite name in directory")
	}
	if !strings.Contains(body, `href="/campsite/1"`) {
		t.Error("expected link to detail page")
	}
}

func TestHandleDetail(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")
	insertTestComment(t, d, 1, "Tinus Lailey", "What a magnificent view!", "2018-10-25T16:30Z")

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, s := range []string{
		"<h2>Chrome River Campground</h2>",
		`href="/directory"`,
		`src="/static/images/test.jpg"`,
		"--Tinus Lailey Oct 25, 2018",
		"Submit Comment",
	} {
		if !strings.Contains(body, s) {
			t.Errorf("expected %q in body", s)
		}
	}
	if strings.Contains(body, `id="comment-modal"`) {
		t.Error("dialog should start closed")
	}
}

func TestHandleDetailOpenDialog(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1?comment=open", nil))

	body := w.Body.String()
	if !strings.Contains(body, `id="comment-modal"`) {
		t.Fatal("expected open dialog")
	}
	if !strings.Contains(body, `href="/campsite/1"`) {
		t.Error("expected close link back to the closed page")
	}
	if strings.Contains(body, "Required") {
		t.Error("untouched form should not show messages")
	}
}

func TestHandleDetailNotFound(t *testing.T) {
	srv := testServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/9999", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if strings.Contains(w.Body.String(), "breadcrumb") {
		t.Error("expected empty page")
	}
}

func TestHandleDetailInvalidID(t *testing.T) {
	srv := testServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/abc", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleDetailWhileLoading(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	release := make(chan struct{})
	done := srv.Load(context.Background(), func(context.Context) error {
		<-release
		return nil
	})

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1", nil))
	if !strings.Contains(w.Body.String(), "Loading...") {
		t.Error("expected loading placeholder")
	}
	if strings.Contains(w.Body.String(), "Chrome River") {
		t.Error("loading page should not show the campsite")
	}

	close(release)
	<-done

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1", nil))
	if !strings.Contains(w.Body.String(), "Chrome River Campground") {
		t.Error("expected campsite after load")
	}
}

func TestHandleDetailLoadError(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	<-srv.Load(context.Background(), func(context.Context) error {
		return errors.New("Failed to fetch campsites")
	})

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Failed to fetch campsites") {
		t.Error("expected error message")
	}
	if strings.Contains(body, "Chrome River") {
		t.Error("error page should not show the campsite")
	}
}

func TestHandleCommentPost(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := postComment(t, srv, "/campsite/1/comments", url.Values{
		"rating": {"4"},
		"author": {"Jo"},
		"text":   {"Nice spot"},
	}, false)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/campsite/1" {
		t.Errorf("location = %q, want /campsite/1", loc)
	}

	var n int
	var rating int
	var author, text string
	if err := d.QueryRow("SELECT COUNT(*) FROM comments WHERE campsite_id = 1").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d comments, want 1", n)
	}
	if err := d.QueryRow("SELECT rating, author, text FROM comments WHERE campsite_id = 1").Scan(&rating, &author, &text); err != nil {
		t.Fatalf("select: %v", err)
	}
	if rating != 4 || author != "Jo" || text != "Nice spot" {
		t.Errorf("stored %d %q %q", rating, author, text)
	}
}

func TestHandleCommentPostBlankRating(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := postComment(t, srv, "/campsite/1/comments", url.Values{
		"rating": {"blank"},
		"author": {"Jo"},
	}, false)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	var rating sql.NullInt64
	if err := d.QueryRow("SELECT rating FROM comments WHERE campsite_id = 1").Scan(&rating); err != nil {
		t.Fatalf("select: %v", err)
	}
	if rating.Valid {
		t.Errorf("rating = %d, want NULL", rating.Int64)
	}
}

func TestHandleCommentPostInvalid(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   string
	}{
		{"empty author", "", "Required"},
		{"short author", "J", "Must be at least 2 characters"},
		{"long author", strings.Repeat("a", 16), "Must be 15 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, d := testServerWithDB(t)
			insertTestCampsite(t, d, 1, "Chrome River Campground")

			w := postComment(t, srv, "/campsite/1/comments", url.Values{
				"rating": {"2"},
				"author": {tt.author},
				"text":   {"keep me"},
			}, false)

			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
			}
			body := w.Body.String()
			if !strings.Contains(body, `id="comment-modal"`) {
				t.Error("dialog should stay open")
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("expected %q in body", tt.want)
			}
			if !strings.Contains(body, "keep me") {
				t.Error("expected the draft to be kept")
			}

			var n int
			if err := d.QueryRow("SELECT COUNT(*) FROM comments").Scan(&n); err != nil {
				t.Fatalf("count: %v", err)
			}
			if n != 0 {
				t.Errorf("got %d comments, want 0", n)
			}
		})
	}
}

func TestHandleCommentPostTrimsInput(t *testing.T) {
	t.Run("padded short author fails min length", func(t *testing.T) {
		srv, d := testServerWithDB(t)
		insertTestCampsite(t, d, 1, "Chrome River Campground")

		w := postComment(t, srv, "/campsite/1/comments", url.Values{"author": {"  a  "}}, false)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
		if !strings.Contains(w.Body.String(), "Must be at least 2 characters") {
			t.Error("expected the min length message")
		}
	})

	t.Run("whitespace author is required", func(t *testing.T) {
		srv, d := testServerWithDB(t)
		insertTestCampsite(t, d, 1, "Chrome River Campground")

		w := postComment(t, srv, "/campsite/1/comments", url.Values{"author": {"    "}}, false)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
		if !strings.Contains(w.Body.String(), "Required") {
			t.Error("expected the required message")
		}
	})

	t.Run("stored values are trimmed", func(t *testing.T) {
		srv, d := testServerWithDB(t)
		insertTestCampsite(t, d, 1, "Chrome River Campground")

		w := postComment(t, srv, "/campsite/1/comments", url.Values{
			"author": {"  Jo  "},
			"text":   {"\tNice spot \n"},
		}, false)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}

		var author, text string
		if err := d.QueryRow("SELECT author, text FROM comments WHERE campsite_id = 1").Scan(&author, &text); err != nil {
			t.Fatalf("select: %v", err)
		}
		if author != "Jo" || text != "Nice spot" {
			t.Errorf("stored %q %q, want %q %q", author, text, "Jo", "Nice spot")
		}
	})
}

func TestHandleCommentPostHTMX(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := postComment(t, srv, "/campsite/1/comments", url.Values{
		"author": {"Jo"},
		"text":   {"Nice spot"},
	}, true)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("expected partial without layout")
	}
	if !strings.Contains(body, "Nice spot") {
		t.Error("expected new comment in partial")
	}
	if strings.Contains(body, `id="comment-modal"`) {
		t.Error("dialog should be closed after submit")
	}
}

func TestHandleCommentPostHTMXInvalid(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, 1, "Chrome River Campground")

	w := postComment(t, srv, "/campsite/1/comments", url.Values{"author": {"J"}}, true)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Must be at least 2 characters") {
		t.Error("expected validation message in partial")
	}
}

func TestHandleCommentPostUnknownCampsite(t *testing.T) {
	srv := testServer(t)

	w := postComment(t, srv, "/campsite/42/comments", url.Values{"author": {"Jo"}}, false)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleCommentPostMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/campsite/1/comments", nil))
	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 405 or 404", w.Code)
	}
}

func postComment(t *testing.T, srv *Server, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		r.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, _ := testServerWithDB(t)
	return srv
}

func testServerWithDB(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	srv, err := NewServer(d, Config{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	return srv, d
}

func insertTestCampsite(t *testing.T, d *sql.DB, id int64, name string) {
	t.Helper()
	if _, err := d.Exec(
		`INSERT INTO campsites (id, name, description, image) VALUES (?, ?, ?, ?)`,
		id, name, "A test campsite.", "images/test.jpg",
	); err != nil {
		t.Fatalf("insert test campsite: %v", err)
	}
}

func insertTestComment(t *testing.T, d *sql.DB, campsiteID int64, author, text, date string) {
	t.Helper()
	if _, err := d.Exec(
		`INSERT INTO comments (campsite_id, author, text, date) VALUES (?, ?, ?, ?)`,
		campsiteID, author, text, date,
	); err != nil {
		t.Fatalf("insert test comment: %v", err)
	}
}
