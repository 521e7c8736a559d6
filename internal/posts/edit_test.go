package posts_test

import (
	"errors"
	"testing"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/internal/validation"
)

func TestDecodeEditAppend(t *testing.T) {
	body := []byte(`{"block_type":"Header","block_data":{"content":{"label":"Hi","hint":"","form_type":"InputArea"}}}`)

	for name, opts := range map[string][]posts.DecodeOption{
		"plain":  nil,
		"schema": {posts.WithSchemaValidator(validation.MustPostValidator())},
	} {
		t.Run(name, func(t *testing.T) {
			edit, err := posts.DecodeEdit(body, opts...)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			appendEdit, ok := edit.(posts.AppendEdit)
			if !ok {
				t.Fatalf("expected AppendEdit, got %T", edit)
			}
			h, ok := appendEdit.Block.(blocks.Header)
			if !ok || h.Content.Label != "Hi" {
				t.Fatalf("unexpected block: %#v", appendEdit.Block)
			}
		})
	}
}

func TestDecodeEditReplace(t *testing.T) {
	body := []byte(`{
		"id": "whatever",
		"title": {"label":"Page","hint":"Title of the page","form_type":"InputText"},
		"blocks": [
			{"block_type":"Footer","block_data":{"copyright":{"label":"2024","hint":"","form_type":"InputText"}}}
		]
	}`)

	edit, err := posts.DecodeEdit(body, posts.WithSchemaValidator(validation.MustPostValidator()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	replace, ok := edit.(posts.ReplaceEdit)
	if !ok {
		t.Fatalf("expected ReplaceEdit, got %T", edit)
	}
	if replace.Post.Title.Label != "Page" || len(replace.Post.Blocks) != 1 {
		t.Fatalf("unexpected post: %+v", replace.Post)
	}
	if _, ok := replace.Post.Blocks[0].(blocks.Footer); !ok {
		t.Fatalf("expected footer, got %#v", replace.Post.Blocks[0])
	}
}

func TestDecodeEditRejections(t *testing.T) {
	cases := map[string]string{
		"not an object":  `[1,2]`,
		"empty object":   `{}`,
		"ambiguous":      `{"block_type":"Header","title":{"label":"x","hint":"","form_type":"InputText"}}`,
		"unknown kind":   `{"block_type":"Sidebar","block_data":{}}`,
		"missing field":  `{"block_type":"Footer","block_data":{}}`,
		"extra field":    `{"block_type":"Footer","block_data":{"copyright":{"label":"a","hint":"","form_type":"InputText"},"year":{"label":"b","hint":"","form_type":"InputText"}}}`,
		"bad form kind":  `{"block_type":"Header","block_data":{"content":{"label":"a","hint":"","form_type":"InputColor"}}}`,
		"missing hint":   `{"block_type":"Header","block_data":{"content":{"label":"a","form_type":"InputArea"}}}`,
		"bad tag type":   `{"block_type":7,"block_data":{}}`,
		"blocks no list": `{"title":{"label":"x","hint":"","form_type":"InputText"},"blocks":{}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := posts.DecodeEdit([]byte(body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !posts.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDecodeEditSchemaIssues(t *testing.T) {
	body := []byte(`{"title":{"label":"x","hint":"","form_type":"InputText"}}`)
	_, err := posts.DecodeEdit(body, posts.WithSchemaValidator(validation.MustPostValidator()))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if len(validation.Issues(err)) == 0 {
		t.Fatal("expected schema issues for a post without blocks")
	}
}

func TestDecodeEditUnknownKindBeforeSchema(t *testing.T) {
	body := []byte(`{"block_type":"Sidebar","block_data":{}}`)
	_, err := posts.DecodeEdit(body, posts.WithSchemaValidator(validation.MustPostValidator()))
	if !errors.Is(err, blocks.ErrUnknownBlockKind) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}
