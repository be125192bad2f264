package assessment

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
)

const questionSetSchemaURL = "schema://question-set.json"

// questionSetSchema describes a usable /questions/ response: a non-empty
// list of questions, each with an id, text and a known type under either
// the current or the legacy key.
var questionSetSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"count": map[string]any{"type": "integer", "minimum": 0},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "text"},
				"properties": map[string]any{
					"id":            map[string]any{"type": []any{"string", "integer"}},
					"text":          map[string]any{"type": "string", "minLength": 1},
					"question_type": map[string]any{"enum": []any{"scale", "yesno", "text"}},
					"type":          map[string]any{"enum": []any{"scale", "yesno", "text"}},
					"category":      map[string]any{"type": []any{"string", "null"}},
					"order":         map[string]any{"type": []any{"integer", "null"}},
					"is_follow_up":  map[string]any{"type": "boolean"},
				},
				"anyOf": []any{
					map[string]any{"required": []any{"question_type"}},
					map[string]any{"required": []any{"type"}},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func questionSetValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		raw, err := json.Marshal(questionSetSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(questionSetSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(questionSetSchemaURL)
	})
	return compiledSchema, compileErr
}

// decodeQuestionSet validates raw against the question set schema and
// decodes it. Failures are returned as *api.InvalidResponseError.
func decodeQuestionSet(raw json.RawMessage) (QuestionSet, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return QuestionSet{}, &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := questionSetValidator()
	if err != nil {
		return QuestionSet{}, &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return QuestionSet{}, &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var set QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return QuestionSet{}, &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("decode questions: %w", err)}
	}
	set.Count = len(set.Questions)
	return set, nil
}
