package task

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var tasksSchema string

const tasksSchemaURL = "tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaError is a single JSON Schema violation in a task document.
type SchemaError struct {
	// Path is the slash-separated location in the document, e.g. "2/status".
	Path    string
	Message string
}

func (e SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// SchemaErrors is returned by ValidateDocument when the document does not
// match the task file schema.
type SchemaErrors []SchemaError

func (e SchemaErrors) Error() string {
	msgs := make([]string, len(e))
	for i, se := range e {
		msgs[i] = se.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e SchemaErrors) Unwrap() error { return ErrInvalidArgument }

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(tasksSchemaURL, tasksSchema)
	})
	return compiledSchema, schemaErr
}

// ValidateDocument checks raw JSON against the task file schema. Unknown
// properties are allowed.
func ValidateDocument(data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile task schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var errs SchemaErrors
	collectSchemaErrors(&errs, ve)
	return errs
}

func collectSchemaErrors(errs *SchemaErrors, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, SchemaError{
			Path:    strings.TrimPrefix(strings.TrimPrefix(ve.InstanceLocation, "#"), "/"),
			Message: ve.Message,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}
