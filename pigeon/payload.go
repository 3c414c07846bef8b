package pigeon

import "reflect"

// Payload is a JSON request body.
type Payload map[string]any

// Compact returns a copy of p without empty entries: nil, "", false, zero
// numbers, nil pointers and empty maps, slices or arrays.
//
// This means a literal false or 0 can never be sent through a compacted
// payload. Batch operations forward their payloads untouched, so callers
// that need such values can use them instead.
func (p Payload) Compact() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		if isEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
