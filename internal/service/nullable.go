package service

import (
	"bytes"
	"encoding/json"
)

// Nullable tells an absent JSON field apart from an explicit null. Set is true
// whenever the key was present, Value is nil when it was null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a Nullable that clears the field
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some returns a Nullable holding v
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true

	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v

	return nil
}

// column returns what a partial update should write for the field
func (n Nullable[T]) column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
