package blocks

import (
	"fmt"
	"slices"
)

// FieldDescriptor describes one editable field of a block kind.
type FieldDescriptor struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	FormType FormKind `json:"form_type"`
}

// BlockSchema is the field layout of one block kind.
type BlockSchema struct {
	BlockType Kind              `json:"block_type"`
	Fields    []FieldDescriptor `json:"fields"`
}

var schemaTable = map[Kind][]FieldDescriptor{
	KindHeader: {
		{Name: "content", Label: "Content", FormType: InputArea},
	},
	KindFooter: {
		{Name: "copyright", Label: "Copyright", FormType: InputText},
	},
}

var registry = mustBuildRegistry(kinds, schemaTable)

// SchemaFor returns the field layout for kind.
func SchemaFor(kind Kind) ([]FieldDescriptor, error) {
	for _, schema := range registry {
		if schema.BlockType == kind {
			return slices.Clone(schema.Fields), nil
		}
	}
	return nil, &UnknownBlockKindError{Kind: string(kind)}
}

// AllSchemas returns every block layout in declaration order.
func AllSchemas() []BlockSchema {
	out := make([]BlockSchema, len(registry))
	for i, schema := range registry {
		out[i] = BlockSchema{BlockType: schema.BlockType, Fields: slices.Clone(schema.Fields)}
	}
	return out
}

func mustBuildRegistry(order []Kind, table map[Kind][]FieldDescriptor) []BlockSchema {
	schemas, err := buildRegistry(order, table)
	if err != nil {
		panic(err)
	}
	return schemas
}

// buildRegistry requires exactly one entry per kind, each with at least one
// uniquely named field of a known form kind.
func buildRegistry(order []Kind, table map[Kind][]FieldDescriptor) ([]BlockSchema, error) {
	for kind := range table {
		if !slices.Contains(order, kind) {
			return nil, fmt.Errorf("blocks: schema registered for unknown kind %q", kind)
		}
	}

	schemas := make([]BlockSchema, 0, len(order))
	for _, kind := range order {
		fields, ok := table[kind]
		if !ok || len(fields) == 0 {
			return nil, fmt.Errorf("blocks: kind %q has no schema", kind)
		}
		seen := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			if field.Name == "" {
				return nil, fmt.Errorf("blocks: kind %q has an unnamed field", kind)
			}
			if _, dup := seen[field.Name]; dup {
				return nil, fmt.Errorf("blocks: kind %q declares field %q twice", kind, field.Name)
			}
			if !field.FormType.Valid() {
				return nil, fmt.Errorf("blocks: kind %q field %q: %w", kind, field.Name, &InvalidFormKindError{Value: string(field.FormType)})
			}
			seen[field.Name] = struct{}{}
		}
		schemas = append(schemas, BlockSchema{BlockType: kind, Fields: slices.Clone(fields)})
	}
	return schemas, nil
}
