// Package widget implements the open/closed comment submission dialog.
package widget

import "github.com/rscole87/nucamp/internal/form"

// State is the dialog's visibility.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// PostFunc receives a validated comment. The widget does not wait on or
// inspect what the function does with it.
type PostFunc func(campsiteID int64, rating, author, text string)

// Widget is one comment submission dialog bound to a campsite.
type Widget struct {
	campsiteID int64
	post       PostFunc
	state      State
}

// New creates a closed widget for the campsite.
func New(campsiteID int64, post PostFunc) *Widget {
	return &Widget{campsiteID: campsiteID, post: post}
}

// CampsiteID returns the campsite comments are posted to.
func (w *Widget) CampsiteID() int64 {
	return w.campsiteID
}

// State returns the current state.
func (w *Widget) State() State {
	return w.state
}

// IsOpen reports whether the dialog is visible.
func (w *Widget) IsOpen() bool {
	return w.state == Open
}

// Toggle flips between Open and Closed.
func (w *Widget) Toggle() {
	if w.state == Open {
		w.state = Closed
		return
	}
	w.state = Open
}

// Submit closes the dialog, then forwards the draft to the post function.
func (w *Widget) Submit(d form.Draft) {
	w.state = Closed
	if w.post != nil {
		w.post(w.campsiteID, d.Rating, d.Author, d.Text)
	}
}

// HandleSubmit submits the form through its validation gate. Submit runs
// only when every field passes; otherwise the dialog stays as it is.
func (w *Widget) HandleSubmit(f *form.Form) form.Result {
	return f.Submit(w.Submit)
}
