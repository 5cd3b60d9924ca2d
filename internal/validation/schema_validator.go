package validation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxViolations caps how many schema violations are reported per document
const maxViolations = 20

// SchemaValidator validates JSON documents against named, pre-registered schemas
type SchemaValidator interface {
	Register(name string, schema []byte) error
	ValidateBytes(data []byte, name string) error
	ValidateFile(dataPath, name string) error
}

// SchemaError lists the leaf violations of one document, each as
// "<instance path>: <keyword>: <message>"
type SchemaError struct {
	Schema     string
	Violations []string
	Truncated  int
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema %s validation failed:", e.Schema)
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v)
	}
	if e.Truncated > 0 {
		fmt.Fprintf(&b, "\n  ... and %d more", e.Truncated)
	}
	return b.String()
}

type validator struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
	printer  *message.Printer
}

// NewSchemaValidator creates an empty validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
		printer:  message.NewPrinter(language.English),
	}
}

// Register compiles a schema document and stores it under name.
// Registering the same name twice keeps the first compiled schema.
func (v *validator) Register(name string, schema []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.schemas[name]; ok {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	compiled, err := v.compiler.Compile(name)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.schemas[name] = compiled
	return nil
}

// ValidateFile validates a JSON file against a registered schema
func (v *validator) ValidateFile(dataPath, name string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return v.ValidateBytes(data, name)
}

// ValidateBytes validates a JSON document against a registered schema.
// Violations are returned as a *SchemaError.
func (v *validator) ValidateBytes(data []byte, name string) error {
	v.mu.RLock()
	schema, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("failed to load schema %s: not registered", name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	err = schema.Validate(doc)
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		out := &SchemaError{Schema: name}
		v.collect(verr, out)
		return out
	}
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// collect walks the cause tree and records only the leaves, which carry the
// concrete failure rather than the enclosing "allOf"/"items" context
func (v *validator) collect(err *jsonschema.ValidationError, out *SchemaError) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			v.collect(cause, out)
		}
		return
	}
	if len(out.Violations) >= maxViolations {
		out.Truncated++
		return
	}
	out.Violations = append(out.Violations, v.describe(err))
}

func (v *validator) describe(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind == nil {
		return location + ": validation failed"
	}
	keyword := strings.Join(err.ErrorKind.KeywordPath(), ".")
	return fmt.Sprintf("%s: %s: %s", location, keyword, err.ErrorKind.LocalizedString(v.printer))
}
