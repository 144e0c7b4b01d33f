package resource

import (
	"encoding/json"
	"reflect"
)

// Optional is a patch field that remembers whether the request body contained its key.
// An explicit JSON null sets the zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ApplyTo copies the value into dst when the field was present.
func (o Optional[T]) ApplyTo(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// ValueType reports the wrapped type, used when documenting request bodies.
func (Optional[T]) ValueType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
