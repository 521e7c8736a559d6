package blocks

import (
	"encoding/json"
	"slices"
)

// Tagged is the self-describing wire and storage form of a Block.
type Tagged struct {
	BlockType Kind             `json:"block_type" bson:"block_type"`
	BlockData map[string]Field `json:"block_data" bson:"block_data"`
}

// FromTaggedPayload resolves a tag and its field map into a Block.
func FromTaggedPayload(tag string, data map[string]Field) (Block, error) {
	kind, err := ParseKind(tag)
	if err != nil {
		return nil, err
	}
	layout, err := SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(layout))
	for _, descriptor := range layout {
		field, ok := data[descriptor.Name]
		if !ok {
			return nil, &PayloadError{Kind: kind, Field: descriptor.Name, Reason: "is missing"}
		}
		if err := field.Validate(); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if len(data) != len(layout) {
		for name := range data {
			if !slices.ContainsFunc(layout, func(d FieldDescriptor) bool { return d.Name == name }) {
				return nil, &PayloadError{Kind: kind, Field: name, Reason: "is not part of the layout"}
			}
		}
	}
	return build(kind, fields), nil
}

// ToTagged is the inverse of FromTaggedPayload.
func ToTagged(block Block) Tagged {
	kind := block.Kind()
	layout, err := SchemaFor(kind)
	if err != nil {
		panic(err)
	}
	values := fieldsOf(block)
	data := make(map[string]Field, len(layout))
	for i, descriptor := range layout {
		data[descriptor.Name] = values[i]
	}
	return Tagged{BlockType: kind, BlockData: data}
}

// Block resolves the tagged form.
func (t Tagged) Block() (Block, error) {
	return FromTaggedPayload(string(t.BlockType), t.BlockData)
}

// List is an ordered block sequence that serializes as tagged blocks.
type List []Block

// Tagged returns the tagged form of every block, never nil.
func (l List) Tagged() []Tagged {
	out := make([]Tagged, 0, len(l))
	for _, block := range l {
		out = append(out, ToTagged(block))
	}
	return out
}

// FromTaggedList resolves a tagged sequence, failing on the first bad entry.
func FromTaggedList(tagged []Tagged) (List, error) {
	out := make(List, 0, len(tagged))
	for _, entry := range tagged {
		block, err := entry.Block()
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Tagged())
}

func (l *List) UnmarshalJSON(data []byte) error {
	var tagged []Tagged
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	list, err := FromTaggedList(tagged)
	if err != nil {
		return err
	}
	*l = list
	return nil
}
