package jsonptr

import "encoding/json"

// Decoder materializes a Go value from the raw, verbatim source bytes of
// one direct child of the target container. Implementations are free to
// decode lazily, validate against a schema, or decode into a specific
// type rather than the generic encoding/json shape.
type Decoder interface {
	Decode(raw []byte) (any, error)
}

// DefaultDecoder decodes every child with encoding/json, producing the
// usual map[string]any / []any / string / float64 / bool / nil shapes.
type DefaultDecoder struct{}

func (DefaultDecoder) Decode(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
