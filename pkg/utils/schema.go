package utils

import "github.com/invopop/jsonschema"

// GenerateSchema reflects the JSON schema of a request shape, inlined with no
// $ref indirection so clients can validate a payload against it directly.
func GenerateSchema[T any]() *jsonschema.Schema {
	var shape T
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(shape)
}
