package form

// Field names a form input.
type Field string

const (
	FieldRating Field = "rating"
	FieldAuthor Field = "author"
	FieldText   Field = "text"
)

// RatingOptions is the fixed set offered by the rating select.
var RatingOptions = []string{"blank", "1", "2", "3", "4", "5"}

// Draft is the unsaved input of one comment form interaction.
type Draft struct {
	Rating string `json:"rating"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Value returns the draft's value for a field.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldRating:
		return d.Rating
	case FieldAuthor:
		return d.Author
	case FieldText:
		return d.Text
	}
	return ""
}

func (d *Draft) set(f Field, value string) {
	switch f {
	case FieldRating:
		d.Rating = value
	case FieldAuthor:
		d.Author = value
	case FieldText:
		d.Text = value
	}
}

// FieldRules binds an ordered rule list to a field.
type FieldRules struct {
	Field Field
	Rules []Rule
}

// Schema is the ordered set of fields a form validates.
type Schema []FieldRules

// CommentSchema validates the comment submission form.
var CommentSchema = Schema{
	{Field: FieldRating},
	{Field: FieldAuthor, Rules: []Rule{Required(), MinLength(2), MaxLength(15)}},
	{Field: FieldText},
}

// Failure is one failed rule.
type Failure struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result is either valid or a set of failures per field.
type Result struct {
	failures map[Field][]Failure
}

// Valid reports whether every rule on every field passed.
func (r Result) Valid() bool {
	return len(r.failures) == 0
}

// Failures returns the failed rules for a field in rule order.
func (r Result) Failures(f Field) []Failure {
	return r.failures[f]
}

// Failed reports whether the named rule failed on the field.
func (r Result) Failed(f Field, rule string) bool {
	for _, fl := range r.failures[f] {
		if fl.Rule == rule {
			return true
		}
	}
	return false
}

// Messages returns the failure messages for a field.
func (r Result) Messages(f Field) []string {
	var msgs []string
	for _, fl := range r.failures[f] {
		msgs = append(msgs, fl.Message)
	}
	return msgs
}

// Map flattens the result into field name to messages, for JSON responses.
func (r Result) Map() map[string][]string {
	m := make(map[string][]string, len(r.failures))
	for f := range r.failures {
		m[string(f)] = r.Messages(f)
	}
	return m
}

// Validate evaluates every rule of the schema against the draft.
func (s Schema) Validate(d Draft) Result {
	var res Result
	for _, fr := range s {
		value := d.Value(fr.Field)
		for _, rule := range fr.Rules {
			if rule.Check(value) {
				continue
			}
			if res.failures == nil {
				res.failures = make(map[Field][]Failure)
			}
			res.failures[fr.Field] = append(res.failures[fr.Field], Failure{Rule: rule.Name, Message: rule.Message})
		}
	}
	return res
}

// Validate checks a draft against CommentSchema.
func Validate(d Draft) Result {
	return CommentSchema.Validate(d)
}

// Form holds the draft, touched fields and latest result of one interaction.
type Form struct {
	schema  Schema
	draft   Draft
	touched map[Field]bool
	result  Result
}

// New creates an empty form for the schema.
func New(schema Schema) *Form {
	f := &Form{schema: schema, touched: make(map[Field]bool)}
	f.result = schema.Validate(f.draft)
	return f
}

// NewComment creates an empty comment form.
func NewComment() *Form {
	return New(CommentSchema)
}

// Change sets a field value, marks it touched and re-validates.
func (f *Form) Change(field Field, value string) Result {
	f.draft.set(field, value)
	f.touched[field] = true
	f.result = f.schema.Validate(f.draft)
	return f.result
}

// Touch marks a field as interacted with without changing it.
func (f *Form) Touch(field Field) {
	f.touched[field] = true
}

// Touched reports whether the field has been interacted with.
func (f *Form) Touched(field Field) bool {
	return f.touched[field]
}

// Draft returns the current values.
func (f *Form) Draft() Draft {
	return f.draft
}

// Result returns the latest validation result.
func (f *Form) Result() Result {
	return f.result
}

// Visible returns the messages to display for a field: none until touched.
func (f *Form) Visible(field Field) []string {
	if !f.touched[field] {
		return nil
	}
	return f.result.Messages(field)
}

// Submit touches every field, re-validates, and calls onValid only if the
// draft passes.
func (f *Form) Submit(onValid func(Draft)) Result {
	for _, fr := range f.schema {
		f.touched[fr.Field] = true
	}
	f.result = f.schema.Validate(f.draft)
	if f.result.Valid() && onValid != nil {
		onValid(f.draft)
	}
	return f.result
}
