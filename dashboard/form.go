package dashboard

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/catalog-admin/errs"
)

const wholeNumberReason = "must be a whole number"

var validate = validator.New()

// FormState is a draft record: one string per field, exactly as typed. It is
// created when a dialog opens and dropped when it closes.
type FormState struct {
	fields []Field
	values map[string]string
	errors errs.ValidationErrors
}

// NewForm returns a blank draft holding each field's default.
func NewForm(fields []Field) *FormState {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Default
	}
	return &FormState{fields: fields, values: values}
}

// SeedForm returns a draft holding values. Fields missing from values are "".
func SeedForm(fields []Field, values map[string]string) *FormState {
	form := &FormState{fields: fields, values: make(map[string]string, len(fields))}
	for _, f := range fields {
		form.values[f.Name] = values[f.Name]
	}
	return form
}

// Fields returns the field set the draft is mapped onto.
func (f *FormState) Fields() []Field {
	return f.fields
}

// Value returns the current text of a field.
func (f *FormState) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of every field's current text.
func (f *FormState) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Apply overwrites the fields present in values. Unknown keys are ignored.
func (f *FormState) Apply(values map[string]string) {
	for _, field := range f.fields {
		if v, ok := values[field.Name]; ok {
			f.values[field.Name] = v
		}
	}
}

// Errors returns the annotations left by the last Validate.
func (f *FormState) Errors() errs.ValidationErrors {
	return f.errors
}

// Validate checks every field's text against its Rules. It returns
// errs.ValidationErrors or nil.
func (f *FormState) Validate() error {
	problems := errs.ValidationErrors{}
	for _, field := range f.fields {
		if fieldErr := checkField(field, f.values[field.Name]); fieldErr != nil {
			problems.Add(fieldErr)
		}
	}

	if len(problems) == 0 {
		f.errors = nil
		return nil
	}
	f.errors = problems
	return problems
}

func checkField(field Field, value string) *errs.ApiErr {
	err := validate.Var(value, field.Rules)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if errors.As(err, &failures) && len(failures) > 0 && failures[0].Tag() == "required" {
		return errs.NewMissingRequiredFieldError(field.Name, field.Label)
	}
	return errs.NewInvalidFieldError(field.Name, field.Label, wholeNumberReason)
}

// Payload validates the draft and serializes every field: text as strings,
// empty allowed, and integers as numbers, an empty integer being 0. The result
// is always the complete record.
func (f *FormState) Payload() (map[string]any, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		value := f.values[field.Name]
		if field.Kind != IntField {
			payload[field.Name] = value
			continue
		}
		if value == "" {
			payload[field.Name] = 0
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			// Digits only, so this is overflow.
			problems := errs.ValidationErrors{}
			problems.Add(errs.NewInvalidFieldError(field.Name, field.Label, wholeNumberReason))
			f.errors = problems
			return nil, problems
		}
		payload[field.Name] = n
	}
	return payload, nil
}

// Clone copies the draft so it can be read without holding the screen lock.
func (f *FormState) Clone() *FormState {
	if f == nil {
		return nil
	}
	clone := &FormState{fields: f.fields, values: f.Values()}
	if f.errors != nil {
		clone.errors = errs.ValidationErrors{}
		for k, v := range f.errors {
			clone.errors[k] = v
		}
	}
	return clone
}
