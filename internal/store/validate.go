package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

const snapshotSchemaURL = "schema://snapshot.json"

// snapshotSchema describes the serialized schedule store. Unknown
// properties are allowed so that newer minor formats stay readable.
var snapshotSchema = map[string]any{
	"type":     "object",
	"required": []string{"format", "items"},
	"properties": map[string]any{
		"format": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
		},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"mode", "topic", "ease_factor", "interval_days", "due_date"},
				"properties": map[string]any{
					"mode":                map[string]any{"type": "string", "minLength": 1},
					"topic":               map[string]any{"type": "string", "minLength": 1},
					"key":                 map[string]any{"type": "string"},
					"variant":             map[string]any{"type": "string"},
					"ease_factor":         map[string]any{"type": "number", "minimum": 1.3, "maximum": 3.0},
					"interval_days":       map[string]any{"type": "integer", "minimum": 0},
					"due_date":            map[string]any{"type": "string", "minLength": 1},
					"total_reviews":       map[string]any{"type": "integer", "minimum": 0},
					"correct_reviews":     map[string]any{"type": "integer", "minimum": 0},
					"consecutive_correct": map[string]any{"type": "integer", "minimum": 0},
					"maturity": map[string]any{
						"type": "string",
						"enum": []string{"new", "learning", "young", "mature"},
					},
					"last_reviewed_at": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce     sync.Once
	compiledSchema  *jsonschema.Schema
	compileSchemaEr error
)

func getSnapshotSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not
		// Go maps with typed slices.
		defBytes, err := json.Marshal(snapshotSchema)
		if err != nil {
			compileSchemaEr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileSchemaEr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, defParsed); err != nil {
			compileSchemaEr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaEr = c.Compile(snapshotSchemaURL)
	})
	return compiledSchema, compileSchemaEr
}

// DecodeSnapshotData parses and validates a serialized schedule store.
// It rejects corrupt JSON, schema violations and formats whose major
// version differs from SnapshotFormat.
func DecodeSnapshotData(raw []byte) (SnapshotData, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return SnapshotData{}, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getSnapshotSchema()
	if err != nil {
		return SnapshotData{}, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return SnapshotData{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var data SnapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SnapshotData{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := CheckFormat(data.Format); err != nil {
		return SnapshotData{}, err
	}
	return data, nil
}

// CheckFormat accepts any format version sharing SnapshotFormat's major.
func CheckFormat(format string) error {
	if !semver.IsValid(format) {
		return fmt.Errorf("invalid snapshot format %q", format)
	}
	if semver.Major(format) != semver.Major(SnapshotFormat) {
		return fmt.Errorf("unsupported snapshot format %s (want %s.x)", format, semver.Major(SnapshotFormat))
	}
	return nil
}
