package form

import (
	"reflect"
	"strings"
	"testing"
)

func TestAuthorRules(t *testing.T) {
	tests := []struct {
		name   string
		author string
		failed []string
	}{
		{"empty fails required", "", []string{"required"}},
		{"one char fails min length", "a", []string{"minLength"}},
		{"two chars pass", "ab", nil},
		{"fifteen chars pass", strings.Repeat("a", 15), nil},
		{"sixteen chars fail max length", strings.Repeat("a", 16), []string{"maxLength"}},
		{"multibyte counts characters", "éé", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(Draft{Author: tt.author})
			var got []string
			for _, f := range res.Failures(FieldAuthor) {
				got = append(got, f.Rule)
			}
			if !reflect.DeepEqual(got, tt.failed) {
				t.Errorf("failed rules = %v, want %v", got, tt.failed)
			}
			if res.Valid() != (len(tt.failed) == 0) {
				t.Errorf("Valid() = %v", res.Valid())
			}
		})
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		author string
		want   []string
	}{
		{"", []string{"Required"}},
		{"a", []string{"Must be at least 2 characters"}},
		{strings.Repeat("x", 20), []string{"Must be 15 characters or less"}},
	}

	for _, tt := range tests {
		got := Validate(Draft{Author: tt.author}).Messages(FieldAuthor)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Messages(%q) = %v, want %v", tt.author, got, tt.want)
		}
	}
}

func TestRatingAndTextUnvalidated(t *testing.T) {
	res := Validate(Draft{Rating: "", Author: "Jo", Text: ""})
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Map())
	}
	if len(res.Failures(FieldRating)) != 0 || len(res.Failures(FieldText)) != 0 {
		t.Error("rating and text have no rules")
	}
}

func TestRulesEvaluatedIndependently(t *testing.T) {
	always := Rule{Name: "a", Message: "A", Check: func(string) bool { return false }}
	other := Rule{Name: "b", Message: "B", Check: func(string) bool { return false }}
	schema := Schema{{Field: FieldText, Rules: []Rule{always, other}}}

	got := schema.Validate(Draft{}).Messages(FieldText)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("messages = %v, want [A B]", got)
	}
}

func TestResultMap(t *testing.T) {
	m := Validate(Draft{Author: "a"}).Map()
	want := map[string][]string{"author": {"Must be at least 2 characters"}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Map() = %v, want %v", m, want)
	}
	if len(Validate(Draft{Author: "Jo"}).Map()) != 0 {
		t.Error("expected empty map for valid draft")
	}
}

func TestFormVisibleOnlyWhenTouched(t *testing.T) {
	f := NewComment()

	if f.Result().Valid() {
		t.Fatal("empty form should not be valid")
	}
	if msgs := f.Visible(FieldAuthor); msgs != nil {
		t.Errorf("untouched field shows %v", msgs)
	}

	f.Change(FieldAuthor, "a")
	if !f.Touched(FieldAuthor) {
		t.Error("expected author touched")
	}
	if got := f.Visible(FieldAuthor); !reflect.DeepEqual(got, []string{"Must be at least 2 characters"}) {
		t.Errorf("visible = %v", got)
	}

	f.Change(FieldAuthor, "Jo")
	if got := f.Visible(FieldAuthor); got != nil {
		t.Errorf("visible after fix = %v", got)
	}
}

func TestFormSubmitGate(t *testing.T) {
	f := NewComment()
	f.Change(FieldRating, "4")
	f.Change(FieldText, "Nice spot")

	calls := 0
	res := f.Submit(func(Draft) { calls++ })
	if res.Valid() {
		t.Fatal("expected invalid without author")
	}
	if calls != 0 {
		t.Fatalf("onValid called %d times for invalid draft", calls)
	}
	if got := f.Visible(FieldAuthor); !reflect.DeepEqual(got, []string{"Required"}) {
		t.Errorf("submit should touch all fields, visible = %v", got)
	}

	f.Change(FieldAuthor, "Jo")
	var submitted Draft
	res = f.Submit(func(d Draft) {
		calls++
		submitted = d
	})
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Map())
	}
	if calls != 1 {
		t.Fatalf("onValid called %d times, want 1", calls)
	}
	want := Draft{Rating: "4", Author: "Jo", Text: "Nice spot"}
	if submitted != want {
		t.Errorf("submitted = %+v, want %+v", submitted, want)
	}
}

func TestDraftValue(t *testing.T) {
	d := Draft{Rating: "3", Author: "Jo", Text: "hi"}
	if d.Value(FieldRating) != "3" || d.Value(FieldAuthor) != "Jo" || d.Value(FieldText) != "hi" {
		t.Errorf("unexpected values from %+v", d)
	}
	if d.Value("other") != "" {
		t.Error("unknown field should be empty")
	}
}
