package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

// schemaSource is the JSON Schema manifests are validated against before
// decoding, matching §6's external-interface description: request/response
// headers as an ordered array of {name, value}, body.json an ordered array
// of untagged JsonKey items.
const schemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["request", "response"],
  "properties": {
    "request": {
      "type": "object",
      "required": ["method", "url", "headers"],
      "properties": {
        "method": {"type": "string"},
        "url": {"type": "string"},
        "version": {"type": "string"},
        "headers": {"type": "array", "items": {"$ref": "#/definitions/header"}}
      }
    },
    "response": {
      "type": "object",
      "required": ["status", "headers", "body"],
      "properties": {
        "status": {"type": "integer"},
        "version": {"type": "string"},
        "message": {"type": "string"},
        "headers": {"type": "array", "items": {"$ref": "#/definitions/header"}},
        "body": {
          "type": "object",
          "required": ["json"],
          "properties": {
            "json": {
              "type": "array",
              "items": {"type": ["string", "integer"]}
            }
          }
        }
      }
    }
  },
  "definitions": {
    "header": {
      "type": "object",
      "required": ["name", "value"],
      "properties": {
        "name": {"type": "string"},
        "value": {"type": "string"}
      }
    }
  }
}`

const schemaResourceName = "manifest.schema.json"

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResourceName, bytes.NewReader([]byte(schemaSource))); err != nil {
		panic("manifest: embedded schema failed to compile: " + err.Error())
	}
	return c.MustCompile(schemaResourceName)
}

// Decode validates raw against the manifest JSON Schema, then decodes it
// into a Manifest with defaults applied.
func Decode(raw []byte) (Manifest, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Manifest{}, witnesserr.Schema(err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return Manifest{}, witnesserr.Schema(err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, witnesserr.Schema(err)
	}
	m.applyDefaults()
	return m, nil
}
