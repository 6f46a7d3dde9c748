package task

import "encoding/json"

// Optional is a tri-state JSON field that distinguishes "key absent" from
// "key present with null" from "key present with a value". Partial updates
// need the distinction: absent means keep the stored value, null means clear
// it. Plain pointers collapse the first two states under encoding/json.
//
// Use with the omitzero struct tag so unset fields round-trip as absent keys.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional representing an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload, which
// is what makes presence detection work.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero reports whether the field was never supplied. encoding/json consults
// it for the omitzero tag, dropping unset fields from the payload entirely.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}
