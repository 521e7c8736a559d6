package blocks

const jsonSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema describes the persisted post document, derived from the
// registry. Blocks are validated against one subschema per kind.
func JSONSchema() map[string]any {
	return map[string]any{
		"$schema": jsonSchemaDraft,
		"$defs":   schemaDefs(),
		"type":    "object",
		"properties": map[string]any{
			"id":    map[string]any{"type": "string"},
			"title": map[string]any{"$ref": "#/$defs/field"},
			"blocks": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/block"},
			},
		},
		"required":             []any{"title", "blocks"},
		"additionalProperties": false,
	}
}

// BlockJSONSchema describes a single tagged block payload.
func BlockJSONSchema() map[string]any {
	return map[string]any{
		"$schema": jsonSchemaDraft,
		"$defs":   schemaDefs(),
		"$ref":    "#/$defs/block",
	}
}

func schemaDefs() map[string]any {
	enum := make([]any, 0, len(formKinds))
	for _, kind := range formKinds {
		enum = append(enum, string(kind))
	}

	variants := make([]any, 0, len(registry))
	for _, schema := range AllSchemas() {
		properties := map[string]any{}
		required := make([]any, 0, len(schema.Fields))
		for _, field := range schema.Fields {
			properties[field.Name] = map[string]any{"$ref": "#/$defs/field"}
			required = append(required, field.Name)
		}
		variants = append(variants, map[string]any{
			"type": "object",
			"properties": map[string]any{
				"block_type": map[string]any{"const": string(schema.BlockType)},
				"block_data": map[string]any{
					"type":                 "object",
					"properties":           properties,
					"required":             required,
					"additionalProperties": false,
				},
			},
			"required":             []any{"block_type", "block_data"},
			"additionalProperties": false,
		})
	}

	return map[string]any{
		"field": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label":     map[string]any{"type": "string", "maxLength": maxLabelLength},
				"hint":      map[string]any{"type": "string", "maxLength": maxHintLength},
				"form_type": map[string]any{"enum": enum},
			},
			"required":             []any{"label", "hint", "form_type"},
			"additionalProperties": false,
		},
		"block": map[string]any{"oneOf": variants},
	}
}
