package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
	"github.com/rscole87/nucamp/internal/form"
	"github.com/rscole87/nucamp/internal/logging"
	"github.com/rscole87/nucamp/internal/view"
	"github.com/rscole87/nucamp/internal/widget"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleHome sends visitors to the directory.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.renderer.Config().DirectoryPath, http.StatusFound)
}

// handleDirectory renders the campsite directory.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	campsites, err := s.campsiteRepo.List(campsite.ListOptions{})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading campsites: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Directory(&buf, campsites); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes(), http.StatusOK)
}

// handleDetail renders the campsite detail page. ?comment=open shows the
// comment dialog.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseCampsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	props, code := s.detailProps(r.Context(), id)
	if props.Campsite != nil && r.URL.Query().Get("comment") == "open" {
		props.Widget.Toggle()
	}
	s.renderDetail(w, r, props, code)
}

// handleCommentPost validates a submitted comment. Invalid input re-renders
// the open dialog with its messages; valid input closes the dialog and
// hands the comment to postComment.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseCampsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	props, code := s.detailProps(r.Context(), id)
	if props.Campsite == nil {
		s.renderDetail(w, r, props, code)
		return
	}

	f := form.NewComment()
	for _, field := range []form.Field{form.FieldRating, form.FieldAuthor, form.FieldText} {
		f.Change(field, strings.TrimSpace(r.FormValue(string(field))))
	}

	// The form is only reachable from the open dialog.
	props.Widget.Toggle()
	if res := props.Widget.HandleSubmit(f); !res.Valid() {
		props.Form = f
		code := http.StatusUnprocessableEntity
		if isHTMX(r) {
			// htmx does not swap 4xx responses
			code = http.StatusOK
		}
		s.renderDetail(w, r, props, code)
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, view.DetailPath(id), http.StatusSeeOther)
		return
	}

	// Re-read so the partial includes the new comment.
	comments, err := s.commentRepo.ListByCampsiteID(id)
	if err != nil {
		props.ErrMess = fmt.Sprintf("Error loading comments: %v", err)
		code = http.StatusInternalServerError
	} else {
		props.Comments = comments
	}
	s.renderDetail(w, r, props, code)
}

// detailProps loads the detail page inputs and the status code to send.
func (s *Server) detailProps(ctx context.Context, id int64) (view.Props, int) {
	props := view.Props{PostComment: s.postComment(ctx)}

	if loading, errMess := s.status.get(); loading || errMess != "" {
		props.IsLoading = loading
		props.ErrMess = errMess
		code := http.StatusOK
		if !loading {
			code = http.StatusInternalServerError
		}
		return props, code
	}

	c, err := s.campsiteRepo.GetByID(id)
	if errors.Is(err, campsite.ErrNotFound) {
		return props, http.StatusNotFound
	}
	if err != nil {
		props.ErrMess = fmt.Sprintf("Error loading campsite: %v", err)
		return props, http.StatusInternalServerError
	}

	comments, err := s.commentRepo.ListByCampsiteID(id)
	if err != nil {
		props.ErrMess = fmt.Sprintf("Error loading comments: %v", err)
		return props, http.StatusInternalServerError
	}

	props.Campsite = c
	props.Comments = comments
	props.Widget = widget.New(c.ID, props.PostComment)
	return props, http.StatusOK
}

// postComment persists submitted comments. Failures are logged; the page
// that submitted the comment does not report them.
func (s *Server) postComment(ctx context.Context) widget.PostFunc {
	logger := logging.FromContext(ctx)
	return func(campsiteID int64, rating, author, text string) {
		stars, err := comment.ParseRating(rating)
		if err != nil {
			logger.Warn("ignoring comment rating", "campsite_id", campsiteID, "error", err)
			stars = nil
		}

		c, err := s.commentRepo.Add(campsiteID, stars, author, text)
		if err != nil {
			logger.Error("posting comment failed", "campsite_id", campsiteID, "error", err)
			return
		}
		logger.Info("comment posted", "campsite_id", campsiteID, "comment_id", c.ID)
	}
}

// renderDetail writes the full page, or the comments partial for HTMX.
func (s *Server) renderDetail(w http.ResponseWriter, r *http.Request, props view.Props, code int) {
	var buf bytes.Buffer
	var err error
	if isHTMX(r) {
		err = s.renderer.Comments(&buf, props)
	} else {
		err = s.renderer.Detail(&buf, props)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes(), code)
}

func writeHTML(w http.ResponseWriter, body []byte, code int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// parseCampsiteID reads the {id} path value.
func parseCampsiteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
