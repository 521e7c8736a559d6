package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/auteur-engineer/website/internal/blocks"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue is one failed schema constraint.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError carries every issue found in a payload.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts the issue list from err, or nil when err is not a schema
// validation failure.
func Issues(err error) []ValidationIssue {
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	return nil
}

// PostValidator checks inbound post and block payloads against the schemas
// derived from the block registry.
type PostValidator struct {
	post  *jsonschema.Schema
	block *jsonschema.Schema
}

// NewPostValidator compiles both schemas once.
func NewPostValidator() (*PostValidator, error) {
	post, err := compileSchema("post.json", blocks.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: post: %v", ErrSchemaInvalid, err)
	}
	block, err := compileSchema("block.json", blocks.BlockJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: block: %v", ErrSchemaInvalid, err)
	}
	return &PostValidator{post: post, block: block}, nil
}

// MustPostValidator panics when the registry schemas do not compile.
func MustPostValidator() *PostValidator {
	v, err := NewPostValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidatePost validates a decoded JSON value (maps, slices, strings).
func (v *PostValidator) ValidatePost(payload any) error {
	return validate(v.post, payload)
}

// ValidateBlock validates a decoded tagged block.
func (v *PostValidator) ValidateBlock(payload any) error {
	return validate(v.block, payload)
}

func validate(schema *jsonschema.Schema, payload any) error {
	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &PayloadValidationError{
				Issues: collectValidationIssues(validationErr),
				Cause:  err,
			}
		}
		return &PayloadValidationError{Cause: err}
	}
	return nil
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
