// internal/appconfig/schema.go
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema guards the config surface before unmarshalling: wrong types
// and out-of-range gate thresholds fail fast with a readable message.
const configSchema = `{
  "type": "object",
  "required": ["seed", "model"],
  "properties": {
    "seed": {"type": "string", "minLength": 1},
    "domains": {
      "type": "array",
      "items": {
        "type": "string",
        "enum": ["math", "citation", "wisdom", "alchemy", "ritual", "system", "phenomenology"]
      }
    },
    "countPerDomain": {"type": "integer", "minimum": 0},
    "gates": {
      "type": "object",
      "properties": {
        "minAccuracy": {"type": "number", "minimum": 0, "maximum": 1},
        "minDomainAccuracy": {"type": "number", "minimum": 0, "maximum": 1},
        "maxOverconfidence": {"type": "number", "minimum": 0, "maximum": 1},
        "maxEce": {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "model": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "name": {"type": "string"},
        "url": {"type": "string"},
        "type": {"type": "string", "enum": ["ollama", "openai"]},
        "model": {"type": "string"},
        "apiKey": {"type": "string"},
        "systemprompt": {"type": "string"}
      }
    },
    "verification": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "baseUrl": {"type": "string"},
        "cacheTtlHours": {"type": "integer", "minimum": 0}
      }
    },
    "timeout": {"type": "integer", "minimum": 0},
    "resultsDir": {"type": "string"},
    "logFile": {"type": "string"},
    "debug": {"type": "boolean"}
  }
}`

func validateSchema(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return errors.New(strings.Join(problems, "; "))
}
