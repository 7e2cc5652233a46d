package model

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const configSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["unitInformation"],
  "properties": {
    "unitInformation": {
      "type": "array",
      "minItems": 6,
      "items": {
        "type": "object",
        "properties": {
          "shorthand": {"type": "string"},
          "cost1": {"type": "number", "minimum": 0},
          "cost2": {"type": "number", "minimum": 0},
          "startHealth": {"type": "number", "minimum": 0},
          "attackRange": {"type": "number", "minimum": 0},
          "upgrade": {"type": "object"}
        }
      }
    },
    "resources": {"type": "object"}
  }
}`

const frameSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["turnInfo", "p1Stats", "p2Stats"],
  "properties": {
    "turnInfo": {
      "type": "array",
      "minItems": 2,
      "items": {"type": "integer"}
    },
    "p1Stats": {"$ref": "#/definitions/stats"},
    "p2Stats": {"$ref": "#/definitions/stats"},
    "p1Units": {"$ref": "#/definitions/units"},
    "p2Units": {"$ref": "#/definitions/units"},
    "events": {
      "type": "object",
      "properties": {
        "breach": {
          "type": "array",
          "items": {"type": "array", "minItems": 5}
        }
      }
    }
  },
  "definitions": {
    "stats": {
      "type": "array",
      "minItems": 3,
      "items": {"type": "number"}
    },
    "units": {
      "type": "array",
      "items": {
        "type": "array",
        "items": {"type": "array", "minItems": 3}
      }
    }
  }
}`

var (
	configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaSrc)
	frameSchema  = jsonschema.MustCompileString("frame.schema.json", frameSchemaSrc)
)

// ValidateConfig checks the raw config line against its schema.
func ValidateConfig(raw []byte) error {
	return validate(configSchema, raw)
}

// ValidateFrame checks a raw game state line against its schema. Violations
// wrap ErrMalformedFrame.
func ValidateFrame(raw []byte) error {
	if err := validate(frameSchema, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return nil
}

func validate(s *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
