package store

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tripplan://tasks.schema.json"

// tasksSchema describes the persisted array. Every key is optional and
// extra keys are allowed; only the types of known keys are enforced.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": ["array", "null"],
  "items": {
    "type": "object",
    "properties": {
      "id":        {"type": ["integer", "null"]},
      "title":     {"type": ["string", "null"]},
      "category":  {"type": ["string", "null"]},
      "date":      {"type": ["string", "null"]},
      "budget":    {"type": ["number", "null"]},
      "important": {"type": ["boolean", "null"]},
      "done":      {"type": ["boolean", "null"]},
      "notes":     {"type": ["string", "null"]}
    },
    "additionalProperties": true
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, strings.NewReader(tasksSchema)); err != nil {
		return nil, fmt.Errorf("adding task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling task schema: %w", err)
	}
	return schema, nil
})

// validateDocument checks a decoded JSON document against the task schema and
// reports the first failing location.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := firstLeaf(ve)
			return fmt.Errorf("at %q: %s", leaf.InstanceLocation, leaf.Message)
		}
		return err
	}
	return nil
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
