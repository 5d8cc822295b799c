// Package schemas validates analysis documents against the JSON Schemas under
// the repository's schemas/ directory.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResumeAnalysisSchema is the repository-relative path of the analysis schema.
const ResumeAnalysisSchema = "schemas/resume_analysis.schema.json"

// ResolveSchemaPath looks for relativePath in the working directory and up to
// two parent directories, so commands and tests find the schema from any
// package directory. It returns an absolute path, or "" if nothing matched.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation at a JSON field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError is returned when the schema itself cannot be loaded or compiled.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at schemaPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaLoader, err := fileLoader(schemaPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	return validate(schemaLoader, gojsonschema.NewBytesLoader(data))
}

// ValidateBytes validates an in-memory JSON document against the schema file
// at schemaPath.
func ValidateBytes(schemaPath string, data []byte) error {
	schemaLoader, err := fileLoader(schemaPath)
	if err != nil {
		return err
	}
	return validate(schemaLoader, gojsonschema.NewBytesLoader(data))
}

func fileLoader(schemaPath string) (gojsonschema.JSONLoader, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema file not found: %s", absPath)
	}
	return gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(absPath)), nil
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    fmt.Sprint(schemaLoader.JsonSource()),
			Message: "schema could not be compiled",
			Cause:   err,
		}
	}

	result, err := schema.Validate(documentLoader)
	if err != nil {
		return fmt.Errorf("failed to parse JSON document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
