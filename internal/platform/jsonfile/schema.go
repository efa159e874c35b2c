package jsonfile

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Compiled document schemas. Compilation happens at init so a broken
// embedded schema fails loudly at startup rather than on first load.
var (
	taskSchema = mustCompileSchema("schema/tasks.json")
	noteSchema = mustCompileSchema("schema/notes.json")
)

// mustCompileSchema compiles an embedded schema file, panicking on failure.
func mustCompileSchema(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("jsonfile: read embedded schema %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("jsonfile: add schema resource %s: %v", name, err))
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("jsonfile: compile schema %s: %v", name, err))
	}
	return schema
}

// validateDocument checks a raw JSON document against the schema before it
// is decoded into domain entities. The returned error carries the collected
// leaf violations, one per offending location.
func validateDocument(schema *jsonschema.Schema, raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(strings.Join(collectViolations(ve, nil), "; "))
		}
		return err
	}

	return nil
}

// collectViolations walks the validation error tree and gathers the leaf
// causes as "location: message" strings.
func collectViolations(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return append(out, fmt.Sprintf("%s: %s", location, ve.Message))
	}

	for _, cause := range ve.Causes {
		out = collectViolations(cause, out)
	}
	return out
}
