// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"encoding/base64"
	"strconv"
)

// protocol value type tags
const (
	valueTypeNull    = "null"
	valueTypeInteger = "integer"
	valueTypeFloat   = "float"
	valueTypeText    = "text"
	valueTypeBlob    = "blob"

	// server-side aliases accepted on decode
	valueTypeBoolean  = "boolean"
	valueTypeDouble   = "double"
	valueTypeString   = "string"
	valueTypeDatetime = "datetime"
)

// TypedValue is the protocol's tagged value representation. Integers travel
// as decimal strings and blobs as base64 text, so Value is either a string,
// a float64 or nil on the wire.
type TypedValue struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value,omitempty"`
}

// bindValue classifies a native Go value into its TypedValue representation
// for an outgoing statement argument. The type tag is derived from the value
// kind alone; strings are never probed for dates at bind time.
func bindValue(v interface{}) (TypedValue, error) {
	if v == nil {
		return TypedValue{Type: valueTypeNull}, nil
	}
	switch t := v.(type) {
	case bool:
		n := "0"
		if t {
			n = "1"
		}
		return TypedValue{Type: valueTypeInteger, Value: n}, nil
	case int:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatInt(int64(t), 10)}, nil
	case int8:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatInt(int64(t), 10)}, nil
	case int16:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatInt(int64(t), 10)}, nil
	case int32:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatInt(int64(t), 10)}, nil
	case int64:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatInt(t, 10)}, nil
	case uint:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatUint(uint64(t), 10)}, nil
	case uint8:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatUint(uint64(t), 10)}, nil
	case uint16:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatUint(uint64(t), 10)}, nil
	case uint32:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatUint(uint64(t), 10)}, nil
	case uint64:
		return TypedValue{Type: valueTypeInteger, Value: strconv.FormatUint(t, 10)}, nil
	case float32:
		return TypedValue{Type: valueTypeFloat, Value: float64(t)}, nil
	case float64:
		return TypedValue{Type: valueTypeFloat, Value: t}, nil
	case string:
		return TypedValue{Type: valueTypeText, Value: t}, nil
	case []byte:
		return TypedValue{Type: valueTypeBlob, Value: base64.StdEncoding.EncodeToString(t)}, nil
	}
	return TypedValue{}, &TursoError{
		Number:      ErrCodeUnsupportedBindType,
		Message:     errMsgUnsupportedBindType,
		MessageArgs: []interface{}{v},
	}
}
