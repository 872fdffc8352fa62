package entity

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Fetcher is implemented by values that can flatten themselves into plain data.
type Fetcher interface {
	Fetch() map[string]any
}

// Fetch returns the current data as plain values. Nested entities and slices
// of them are flattened recursively. Fetch does not touch validation state.
// A nil entity, including one embedded in a zero-value wrapper, fetches as nil.
func (e *Entity) Fetch() map[string]any {
	if e == nil {
		return nil
	}
	raw := make(map[string]any, len(e.data))
	for i, f := range e.schema.fields {
		raw[f.name] = FetchValue(e.data[i])
	}
	return raw
}

// FetchValue flattens a single value: slices and arrays element by element,
// Fetchers through their Fetch method, anything else (byte slices included)
// unchanged.
func FetchValue(value any) any {
	switch value.(type) {
	case nil:
		return nil
	case []byte:
		return value
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = FetchValue(rv.Index(i).Interface())
		}
		return out
	}

	if f, ok := value.(Fetcher); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		if raw := f.Fetch(); raw != nil {
			return raw
		}
		return nil
	}
	return value
}

// MarshalJSON encodes the fetched data.
func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fetch())
}

// FetchInto decodes the fetched data of f into out, which must be a pointer
// to a struct or map. Struct fields are matched by their mapstructure tag or,
// failing that, case-insensitively by name.
func FetchInto(f Fetcher, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		Squash:           true,
	})
	if err != nil {
		return fmt.Errorf("fetch into %T: %w", out, err)
	}
	if err := dec.Decode(f.Fetch()); err != nil {
		return fmt.Errorf("fetch into %T: %w", out, err)
	}
	return nil
}
