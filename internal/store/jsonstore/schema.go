package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var taskSchema string

const schemaURL = "tasks.schema.json"

var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(taskSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// SchemaError lists every violation found in a data file.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "schema: " + strings.Join(e.Violations, "; ")
}

// validate checks raw file bytes against the task schema.
func validate(schema *jsonschema.Schema, b []byte) error {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	se := &SchemaError{}
	collectViolations(se, ve)
	return se
}

func collectViolations(se *SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		msg := ve.Message
		if p := pointerToPath(ve.InstanceLocation); p != "" {
			msg = p + ": " + msg
		}
		se.Violations = append(se.Violations, msg)
		return
	}
	for _, c := range ve.Causes {
		collectViolations(se, c)
	}
}

// pointerToPath turns "/0/id" into "[0].id".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
