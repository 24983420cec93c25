// Package view builds and renders the campsite detail page.
//
// Detail is a pure function of its props. The only state it touches is the
// comment widget passed in (or created) for the request.
package view

import (
	"fmt"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
	"github.com/rscole87/nucamp/internal/form"
	"github.com/rscole87/nucamp/internal/widget"
)

// Mode selects which of the mutually exclusive page bodies is rendered.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeLoading
	ModeError
	ModeContent
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	case ModeContent:
		return "content"
	}
	return "empty"
}

// Config holds the collaborator locations the page links to.
type Config struct {
	BaseURL       string // prefix for campsite image paths
	DirectoryPath string // breadcrumb target
}

// Props is everything the detail page is rendered from.
type Props struct {
	IsLoading   bool
	ErrMess     string
	Campsite    *campsite.Campsite
	Comments    []*comment.Comment // nil hides the comment section
	PostComment widget.PostFunc

	// Widget and Form carry the dialog state of the current interaction.
	// A closed widget and an empty form are used when nil.
	Widget *widget.Widget
	Form   *form.Form
}

// Crumb is one breadcrumb item.
type Crumb struct {
	Label  string
	Href   string
	Active bool
}

// Entry is one rendered comment.
type Entry struct {
	Text   string
	Author string
	Date   string
}

// FieldModel is one form input with its visible messages.
type FieldModel struct {
	Value    string
	Messages []string
}

// WidgetModel is the submission dialog.
type WidgetModel struct {
	CampsiteID    int64
	Open          bool
	ToggleHref    string
	Action        string
	RatingOptions []string
	Rating        FieldModel
	Author        FieldModel
	Text          FieldModel
}

// CommentSection is the comment list plus its widget.
type CommentSection struct {
	Entries []Entry
	Widget  WidgetModel
}

// Model is the render tree for one detail page.
type Model struct {
	Mode        Mode
	ErrMess     string
	Campsite    *campsite.Campsite
	ImageURL    string
	Breadcrumbs []Crumb
	Comments    *CommentSection
}

// DetailPath returns the page path for a campsite.
func DetailPath(id int64) string {
	return fmt.Sprintf("/campsite/%d", id)
}

// Detail evaluates the loading, error, content and empty branches in that order.
func Detail(cfg Config, p Props) Model {
	if p.IsLoading {
		return Model{Mode: ModeLoading}
	}
	if p.ErrMess != "" {
		return Model{Mode: ModeError, ErrMess: p.ErrMess}
	}
	if p.Campsite == nil {
		return Model{Mode: ModeEmpty}
	}

	c := p.Campsite
	w := p.Widget
	if w == nil {
		w = widget.New(c.ID, p.PostComment)
	}
	return Model{
		Mode:     ModeContent,
		Campsite: c,
		ImageURL: cfg.BaseURL + c.Image,
		Breadcrumbs: []Crumb{
			{Label: "Directory", Href: cfg.DirectoryPath},
			{Label: c.Name, Active: true},
		},
		Comments: Comments(p.Comments, w, p.Form),
	}
}

// Comments builds the comment section. It returns nil when comments is nil;
// an empty list still carries the widget.
func Comments(comments []*comment.Comment, w *widget.Widget, f *form.Form) *CommentSection {
	if comments == nil {
		return nil
	}

	entries := make([]Entry, 0, len(comments))
	for _, c := range comments {
		entries = append(entries, Entry{
			Text:   c.Text,
			Author: c.Author,
			Date:   comment.FormatDate(c.Date),
		})
	}

	return &CommentSection{Entries: entries, Widget: widgetModel(w, f)}
}

func widgetModel(w *widget.Widget, f *form.Form) WidgetModel {
	if f == nil {
		f = form.NewComment()
	}
	path := DetailPath(w.CampsiteID())
	toggle := path + "?comment=open"
	if w.IsOpen() {
		toggle = path
	}

	field := func(name form.Field) FieldModel {
		return FieldModel{Value: f.Draft().Value(name), Messages: f.Visible(name)}
	}

	return WidgetModel{
		CampsiteID:    w.CampsiteID(),
		Open:          w.IsOpen(),
		ToggleHref:    toggle,
		Action:        path + "/comments",
		RatingOptions: form.RatingOptions,
		Rating:        field(form.FieldRating),
		Author:        field(form.FieldAuthor),
		Text:          field(form.FieldText),
	}
}
