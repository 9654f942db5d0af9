package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/clarolist/internal/model"
)

var (
	// ErrNotExist reports that nothing has been persisted yet.
	ErrNotExist = errors.New("document does not exist")
	// ErrCorrupt reports a persisted blob that is not a valid document.
	ErrCorrupt = errors.New("document is corrupt")
)

const documentSchemaURL = "https://claro.local/schema/folders.json"

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "tasks"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "name", "completed"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string"},
            "completed": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(documentSchemaURL, documentSchema)

// Decode parses a persisted blob. Anything that does not describe a
// well-formed document wraps ErrCorrupt, including a document that parses
// but breaks id uniqueness or has blank names.
func Decode(b []byte) (model.Document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrCorrupt)
	}
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrCorrupt, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: schema: %v", ErrCorrupt, err)
	}
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorrupt, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc, nil
}

// Encode serializes the document the way it is stored on disk.
func Encode(doc model.Document) ([]byte, error) {
	// Clone also turns nil task lists into empty arrays.
	doc = doc.Clone()
	if doc == nil {
		doc = model.Document{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}
