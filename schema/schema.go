package schema

import "encoding/json"

// Schema is message schema interface
type Schema interface {
	// String returns the text sent to a model for this schema
	String() string
}

// Stringify returns the model-facing text of a schema.
// Plain strings are returned as is, everything else is JSON encoded.
func Stringify(s Schema) string {
	if s == nil {
		return ""
	}
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes returns the model-facing bytes of a schema
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
