package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString tells an absent JSON field apart from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// NewNullableString returns a present, non-null value.
func NewNullableString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}
