package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/acampagne/todo/internal/model"
)

//go:embed schema.json
var schemaJSON string

// ValidationResult reports what Check found in the backing file.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation ran
}

// Check validates the raw backing file against the bundled JSON Schema,
// then re-checks each record with the model constructor for what the
// schema cannot express (timestamp parseability, completed/completed_at
// consistency, duplicate ids). A missing file is valid: it reads as an
// empty collection.
func (s *Store) Check() *ValidationResult {
	res := &ValidationResult{Valid: true}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s does not exist yet", s.path))
			return res
		}
		res.Valid = false
		res.Errors = append(res.Errors, &StorageError{Path: s.path, Op: "read", Err: err})
		return res
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, &StorageError{Path: s.path, Op: "parse", Err: err})
		return res
	}

	if schema, err := compileSchema(); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("schema unavailable, using record checks only: %v", err))
	} else {
		res.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			res.Valid = false
			appendSchemaErrors(res, err)
		}
	}

	var recs []model.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		// A shape mismatch is normally already reported by the schema
		// pass above.
		if !res.UsedSchema {
			res.Valid = false
			res.Errors = append(res.Errors, &StorageError{Path: s.path, Op: "parse", Err: err})
		}
		return res
	}
	seen := make(map[int]int, len(recs))
	for i, rec := range recs {
		if _, err := model.FromRecord(rec); err != nil {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if prev, dup := seen[rec.ID]; dup {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Errorf("record %d: id %d already used by record %d", i, rec.ID, prev))
			continue
		}
		seen[rec.ID] = i
	}
	return res
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource("todos.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("todos.schema.json")
}

func appendSchemaErrors(res *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		res.Errors = append(res.Errors, err)
		return
	}
	collectSchemaErrors(res, ve)
}

func collectSchemaErrors(res *ValidationResult, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		res.Errors = append(res.Errors, fmt.Errorf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(res, cause)
	}
}
