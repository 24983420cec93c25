package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
	"github.com/rscole87/nucamp/internal/form"
	"github.com/rscole87/nucamp/internal/logging"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// ValidationError is the body of a 400 response for an invalid comment.
type ValidationError struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

// apiListCampsites returns the directory.
func (s *Server) apiListCampsites(w http.ResponseWriter, r *http.Request) {
	opts := campsite.ListOptions{FeaturedOnly: r.URL.Query().Get("featured") == "true"}
	campsites, err := s.campsiteRepo.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing campsites: %v", err), http.StatusInternalServerError)
		return
	}
	if campsites == nil {
		campsites = []*campsite.Campsite{}
	}
	apiJSON(w, campsites, http.StatusOK)
}

// apiGetCampsite returns a campsite with its comments.
func (s *Server) apiGetCampsite(w http.ResponseWriter, r *http.Request) {
	id, ok := s.apiCampsiteID(w, r)
	if !ok {
		return
	}

	c, err := s.campsiteRepo.GetByID(id)
	if err != nil {
		s.apiLookupError(w, err)
		return
	}

	comments, err := s.commentRepo.ListByCampsiteID(id)
	if err != nil {
		apiError(w, fmt.Sprintf("loading comments: %v", err), http.StatusInternalServerError)
		return
	}

	type response struct {
		Campsite *campsite.Campsite `json:"campsite"`
		Comments []*comment.Comment `json:"comments"`
	}

	apiJSON(w, response{Campsite: c, Comments: comments}, http.StatusOK)
}

// apiListComments returns comments for a campsite.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := s.apiCampsiteID(w, r)
	if !ok {
		return
	}
	if _, err := s.campsiteRepo.GetByID(id); err != nil {
		s.apiLookupError(w, err)
		return
	}

	comments, err := s.commentRepo.ListByCampsiteID(id)
	if err != nil {
		apiError(w, fmt.Sprintf("loading comments: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, comments, http.StatusOK)
}

// apiAddComment validates and stores a comment.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := s.apiCampsiteID(w, r)
	if !ok {
		return
	}

	var d form.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	d.Author = strings.TrimSpace(d.Author)
	d.Text = strings.TrimSpace(d.Text)

	if res := form.Validate(d); !res.Valid() {
		apiJSON(w, ValidationError{Error: "invalid comment", Fields: res.Map()}, http.StatusBadRequest)
		return
	}
	rating, err := comment.ParseRating(d.Rating)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.campsiteRepo.GetByID(id); err != nil {
		s.apiLookupError(w, err)
		return
	}

	c, err := s.commentRepo.Add(id, rating, d.Author, d.Text)
	if err != nil {
		apiError(w, fmt.Sprintf("adding comment: %v", err), http.StatusInternalServerError)
		return
	}
	logging.FromContext(r.Context()).Info("comment posted", "campsite_id", id, "comment_id", c.ID)

	apiJSON(w, c, http.StatusCreated)
}

func (s *Server) apiCampsiteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseCampsiteID(r)
	if err != nil {
		apiError(w, "invalid campsite ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) apiLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, campsite.ErrNotFound) {
		apiError(w, "campsite not found", http.StatusNotFound)
		return
	}
	apiError(w, err.Error(), http.StatusInternalServerError)
}
