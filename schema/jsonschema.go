package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

var reflector = &jsonschema.Reflector{
	DoNotReference:            true,
	ExpandedStruct:            true,
	AllowAdditionalProperties: false,
}

// JSONSchema returns the inlined JSON schema of v as a generic map,
// ready to be used as function/tool parameters by any provider.
func JSONSchema(v any) (map[string]any, error) {
	s := reflector.Reflect(v)
	bs, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]any)
	if err := json.Unmarshal(bs, &ret); err != nil {
		return nil, err
	}
	// providers reject the meta keys on tool parameters
	delete(ret, "$schema")
	delete(ret, "$id")
	return ret, nil
}
