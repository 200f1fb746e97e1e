package validation

import (
	"sort"
	"strings"

	"job-board-backend/internal/apperror"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a JSON Schema document expressed as Go values
type Schema map[string]interface{}

// PatchSchema builds an object schema that accepts only the given properties
func PatchSchema(properties map[string]interface{}) Schema {
	return Schema{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

// Patch validates a partial update document against schema. Unknown fields
// and type mismatches are reported as a conflict.
func Patch(doc map[string]interface{}, schema Schema) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(map[string]interface{}(schema)),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return apperror.Internal("failed to validate update", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		if re.Field() == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
			messages = append(messages, re.Description())
			continue
		}
		messages = append(messages, re.Field()+": "+re.Description())
	}
	sort.Strings(messages)
	return apperror.Conflict("invalid update: " + strings.Join(messages, ", "))
}
