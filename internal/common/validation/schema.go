package validation

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema for job variables or request bodies.
type Schema struct {
	schema *gojsonschema.Schema
}

var (
	compiledMu sync.Mutex
	compiled   = map[string]*Schema{}
)

// Compile parses a JSON schema document. Identical documents share one
// compiled schema.
func Compile(schemaJSON string) (*Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[schemaJSON]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	out := &Schema{schema: s}
	compiled[schemaJSON] = out
	return out, nil
}

// MustCompile is Compile for schemas embedded in the binary.
func MustCompile(schemaJSON string) *Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks an already decoded document (maps, slices, scalars).
func (s *Schema) Validate(document interface{}) *ValidationResult {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "UNREADABLE_DOCUMENT",
			}},
		}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return &ValidationResult{Valid: false, Errors: errs}
}

// GetErrorMessages flattens errors into "field: message" lines.
func (r *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// Error joins the messages for embedding in a failure detail.
func (r *ValidationResult) Error() string {
	return strings.Join(r.GetErrorMessages(), "; ")
}
