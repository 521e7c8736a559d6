package posts

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/auteur-engineer/website/internal/blocks"
)

// Edit is an inbound change to an existing post: either a ReplaceEdit or an
// AppendEdit.
type Edit interface {
	isEdit()
}

// ReplaceEdit overwrites title and blocks. Post.ID is informational only.
type ReplaceEdit struct {
	Post Post
}

// AppendEdit adds one block to the end of the post.
type AppendEdit struct {
	Block blocks.Block
}

func (ReplaceEdit) isEdit() {}
func (AppendEdit) isEdit()  {}

// SchemaValidator checks decoded JSON values before they are typed.
type SchemaValidator interface {
	ValidatePost(payload any) error
	ValidateBlock(payload any) error
}

type decodeConfig struct {
	schema SchemaValidator
}

// DecodeOption configures DecodeEdit.
type DecodeOption func(*decodeConfig)

// WithSchemaValidator runs the payload through v before typed decoding.
func WithSchemaValidator(v SchemaValidator) DecodeOption {
	return func(c *decodeConfig) {
		c.schema = v
	}
}

// DecodeEdit classifies and decodes an edit body. A body with a block_type
// key is a tagged block; a body with title or blocks keys is a full post.
// Every returned error is a validation error.
func DecodeEdit(body []byte, opts ...DecodeOption) (Edit, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, invalidInput(fmt.Errorf("posts: edit body must be a JSON object: %w", err))
	}
	_, tagged := keys["block_type"]
	_, hasTitle := keys["title"]
	_, hasBlocks := keys["blocks"]
	full := hasTitle || hasBlocks

	switch {
	case tagged && full, !tagged && !full:
		return nil, invalidInput(ErrInvalidEdit)
	case tagged:
		edit, err := decodeAppend(body, keys["block_type"], cfg)
		return edit, invalidInput(err)
	default:
		edit, err := decodeReplace(body, cfg)
		return edit, invalidInput(err)
	}
}

func decodeAppend(body []byte, rawTag json.RawMessage, cfg decodeConfig) (Edit, error) {
	var tag string
	if err := json.Unmarshal(rawTag, &tag); err != nil {
		return nil, fmt.Errorf("posts: block_type must be a string: %w", err)
	}
	if _, err := blocks.ParseKind(tag); err != nil {
		return nil, err
	}
	if cfg.schema != nil {
		payload, err := decodeAny(body)
		if err != nil {
			return nil, err
		}
		if err := cfg.schema.ValidateBlock(payload); err != nil {
			return nil, err
		}
	}

	var envelope blocks.Tagged
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	block, err := envelope.Block()
	if err != nil {
		return nil, err
	}
	return AppendEdit{Block: block}, nil
}

func decodeReplace(body []byte, cfg decodeConfig) (Edit, error) {
	if cfg.schema != nil {
		payload, err := decodeAny(body)
		if err != nil {
			return nil, err
		}
		if err := cfg.schema.ValidatePost(payload); err != nil {
			return nil, err
		}
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return ReplaceEdit{Post: post}, nil
}

func decodeAny(body []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
