package layout

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// layoutSchemaJSON constrains the wholesale save payload before it is decoded.
const layoutSchemaJSON = `{
	"type": "object",
	"required": ["widgets"],
	"properties": {
		"widgets": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"visible": {"type": "boolean"},
					"collapsed": {"type": "boolean"},
					"order": {"type": "integer"},
					"span": {"type": "integer", "minimum": 1, "maximum": 3}
				}
			}
		},
		"version": {"type": "integer", "minimum": 0}
	}
}`

// LayoutValidator checks raw layout payloads against the persisted-layout
// schema. The schema compiles once on first use.
type LayoutValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewLayoutValidator builds a validator backed by jsonschema v5.
func NewLayoutValidator() *LayoutValidator {
	return &LayoutValidator{}
}

// Validate ensures the raw payload is a well-formed persisted layout.
func (v *LayoutValidator) Validate(payload []byte) error {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("layout.json", strings.NewReader(layoutSchemaJSON)); err != nil {
			v.err = err
			return
		}
		v.schema, v.err = compiler.Compile("layout.json")
	})
	if v.err != nil {
		return fmt.Errorf("layout: compile layout schema: %w", v.err)
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("layout: parse layout payload: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("layout: layout payload failed validation: %w", err)
	}
	return nil
}
