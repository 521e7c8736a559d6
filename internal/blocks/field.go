package blocks

import (
	"encoding/json"
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FormKind is the input widget used to edit a Field.
type FormKind string

const (
	InputArea FormKind = "InputArea"
	InputText FormKind = "InputText"
	InputDate FormKind = "InputDate"
)

var formKinds = []FormKind{InputArea, InputText, InputDate}

// FormKinds lists every known kind in declaration order.
func FormKinds() []FormKind {
	return slices.Clone(formKinds)
}

// ParseFormKind returns the FormKind named by value or an InvalidFormKindError.
func ParseFormKind(value string) (FormKind, error) {
	kind := FormKind(value)
	if !kind.Valid() {
		return "", &InvalidFormKindError{Value: value}
	}
	return kind, nil
}

// Valid reports whether k is one of the declared kinds.
func (k FormKind) Valid() bool {
	return slices.Contains(formKinds, k)
}

func (k FormKind) String() string {
	return string(k)
}

func (k *FormKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("blocks: form_type must be a string: %w", err)
	}
	parsed, err := ParseFormKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

const (
	maxLabelLength = 200
	maxHintLength  = 500
)

// Field is a labelled, hinted input descriptor. Label and hint may be empty
// but are always serialized.
type Field struct {
	Label    string   `json:"label" bson:"label"`
	Hint     string   `json:"hint" bson:"hint"`
	FormType FormKind `json:"form_type" bson:"form_type"`
}

// NewField builds a Field after checking the kind.
func NewField(label, hint string, kind FormKind) (Field, error) {
	field := Field{Label: label, Hint: hint, FormType: kind}
	if err := field.Validate(); err != nil {
		return Field{}, err
	}
	return field, nil
}

// Validate checks the kind and bounds label and hint by character count.
func (f Field) Validate() error {
	if !f.FormType.Valid() {
		return &InvalidFormKindError{Value: string(f.FormType)}
	}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Label, validation.RuneLength(0, maxLabelLength)),
		validation.Field(&f.Hint, validation.RuneLength(0, maxHintLength)),
	)
}

// UnmarshalJSON rejects objects that omit label, hint or form_type.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label    *string   `json:"label"`
		Hint     *string   `json:"hint"`
		FormType *FormKind `json:"form_type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Label == nil:
		return &MissingFieldError{Name: "label"}
	case raw.Hint == nil:
		return &MissingFieldError{Name: "hint"}
	case raw.FormType == nil:
		return &MissingFieldError{Name: "form_type"}
	}
	*f = Field{Label: *raw.Label, Hint: *raw.Hint, FormType: *raw.FormType}
	return nil
}

// TitleField is the descriptor used for a post title.
func TitleField() Field {
	return Field{Label: "Title", Hint: "Title of the page", FormType: InputText}
}
