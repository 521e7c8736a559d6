package blocks

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestFromTaggedPayloadBuildsVariants(t *testing.T) {
	content := Field{Label: "H", Hint: "", FormType: InputArea}
	block, err := FromTaggedPayload("Header", map[string]Field{"content": content})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != (Header{Content: content}) {
		t.Fatalf("expected header, got %#v", block)
	}

	copyright := Field{Label: "C", Hint: "", FormType: InputText}
	block, err = FromTaggedPayload("Footer", map[string]Field{"copyright": copyright})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != (Footer{Copyright: copyright}) {
		t.Fatalf("expected footer, got %#v", block)
	}
}

func TestFromTaggedPayloadUnknownKind(t *testing.T) {
	_, err := FromTaggedPayload("Bogus", map[string]Field{})
	var unknown *UnknownBlockKindError
	if !errors.As(err, &unknown) || unknown.Kind != "Bogus" {
		t.Fatalf("expected UnknownBlockKindError(Bogus), got %v", err)
	}
	if !errors.Is(err, ErrUnknownBlockKind) {
		t.Fatal("expected ErrUnknownBlockKind sentinel")
	}
}

func TestFromTaggedPayloadCountsCharactersNotBytes(t *testing.T) {
	label := strings.Repeat("日", maxLabelLength)
	hint := strings.Repeat("é", maxHintLength)
	content := Field{Label: label, Hint: hint, FormType: InputArea}
	block, err := FromTaggedPayload("Header", map[string]Field{"content": content})
	if err != nil {
		t.Fatalf("expected label of %d characters to be accepted, got %v", maxLabelLength, err)
	}
	if block != (Header{Content: content}) {
		t.Fatalf("expected header, got %#v", block)
	}

	over := Field{Label: label + "日", FormType: InputArea}
	if _, err := FromTaggedPayload("Header", map[string]Field{"content": over}); !IsValidation(err) {
		t.Fatalf("expected validation error past the limit, got %v", err)
	}
}

func TestFromTaggedPayloadRejectsMismatchedData(t *testing.T) {
	field := Field{Label: "x", FormType: InputText}
	cases := map[string]map[string]Field{
		"missing": {},
		"wrong":   {"copyright": field},
		"extra":   {"content": field, "subtitle": field},
	}
	for name, data := range cases {
		_, err := FromTaggedPayload("Header", data)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", name, err)
		}
	}

	_, err := FromTaggedPayload("Header", map[string]Field{"content": {Label: "x", FormType: "Slider"}})
	if !errors.Is(err, ErrInvalidFormKind) {
		t.Fatalf("expected ErrInvalidFormKind, got %v", err)
	}
}

func TestToTaggedWireShape(t *testing.T) {
	tagged := ToTagged(Header{Content: Field{Label: "H", FormType: InputArea}})
	data, err := json.Marshal(tagged)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"block_type":"Header","block_data":{"content":{"label":"H","hint":"","form_type":"InputArea"}}}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestListJSON(t *testing.T) {
	empty, err := json.Marshal(List(nil))
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected empty array, got %s (%v)", empty, err)
	}

	list := List{
		Header{Content: Field{Label: "H", FormType: InputArea}},
		Footer{Copyright: Field{Label: "C", FormType: InputText}},
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded List
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, list) {
		t.Fatalf("expected %#v, got %#v", list, decoded)
	}

	err = json.Unmarshal([]byte(`[{"block_type":"Sidebar","block_data":{}}]`), &decoded)
	if !errors.Is(err, ErrUnknownBlockKind) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestValidateBlock(t *testing.T) {
	if err := Validate(Header{Content: Field{FormType: InputArea}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(Footer{}); !errors.Is(err, ErrInvalidFormKind) {
		t.Fatalf("expected invalid form kind, got %v", err)
	}
	if err := Validate(nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for nil block, got %v", err)
	}
}
