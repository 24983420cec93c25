// Package client provides an HTTP client for the nucamp REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
	"github.com/rscole87/nucamp/internal/form"
)

// Client is an HTTP client for the nucamp API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ShowResponse is the response from GET /api/campsites/{id}.
type ShowResponse struct {
	Campsite *campsite.Campsite `json:"campsite"`
	Comments []*comment.Comment `json:"comments"`
}

// ListOptions controls filtering for ListCampsites.
type ListOptions struct {
	FeaturedOnly bool
}

// ListCampsites returns the campsite directory.
func (c *Client) ListCampsites(opts ListOptions) ([]*campsite.Campsite, error) {
	path := "/api/campsites"
	if opts.FeaturedOnly {
		path += "?featured=true"
	}

	var sites []*campsite.Campsite
	if err := c.get(path, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// GetCampsite returns a campsite with its comments.
func (c *Client) GetCampsite(id int64) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get(fmt.Sprintf("/api/campsites/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddComment posts a comment to a campsite.
func (c *Client) AddComment(id int64, rating, author, text string) (*comment.Comment, error) {
	d := form.Draft{Rating: rating, Author: author, Text: text}
	var comm comment.Comment
	if err := c.post(fmt.Sprintf("/api/campsites/%d/comments", id), d, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// ListComments returns comments for a campsite.
func (c *Client) ListComments(id int64) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := c.get(fmt.Sprintf("/api/campsites/%d/comments", id), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string              `json:"error"`
			Fields map[string][]string `json:"fields"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s%s", errResp.Error, fieldSummary(errResp.Fields))
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// fieldSummary renders per-field messages as ": author: Required".
func fieldSummary(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(fields[name], ", "))
	}
	return ": " + strings.Join(parts, "; ")
}
