package schema

import (
	"github.com/xeipuuv/gojsonschema"
)

// Validator is the structural-validation predicate behind
// entity.SchemaValidator. The platform only stores a restricted
// JSON-Schema subset (object/string/number/boolean/array-of-scalar,
// required), but the predicate itself is a full validator.
type Validator struct{}

func New() Validator { return Validator{} }

// Validate reports whether value conforms to schema. A schema that
// cannot be compiled validates nothing.
func (Validator) Validate(value map[string]any, schema map[string]any) bool {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(value),
	)
	if err != nil {
		return false
	}
	return result.Valid()
}
