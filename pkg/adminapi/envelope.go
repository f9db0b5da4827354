package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listKeys is the fixed priority in which wrapped list payloads are looked up
var listKeys = []string{"data", "items", "products", "results"}

// DecodeList normalizes a list response to a slice. Accepted shapes, in order:
// {data:[...]}, {items:[...]}, {products:[...]}, {results:[...]}, a bare array.
// An object under "data" is searched once more with the same keys.
// Unrecognized shapes yield an empty slice; only undecodable elements are an error.
func DecodeList[T any](raw []byte) ([]T, error) {
	out, _, err := decodeList[T](raw, 1)
	return out, err
}

func decodeList[T any](raw []byte, depth int) ([]T, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []T{}, false, nil
	}

	switch raw[0] {
	case '[':
		out, err := decodeArray[T](raw)
		return out, err == nil, err
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		for _, key := range listKeys {
			value := bytes.TrimSpace(fields[key])
			if len(value) == 0 {
				continue
			}
			switch value[0] {
			case '[':
				out, err := decodeArray[T](value)
				return out, err == nil, err
			case '{':
				if key != "data" || depth == 0 {
					continue
				}
				out, ok, err := decodeList[T](value, depth-1)
				if err != nil || ok {
					return out, ok, err
				}
			}
		}
	}

	return []T{}, false, nil
}

func decodeArray[T any](raw []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeData decodes a single object, unwrapping a {data: ...} envelope when present
func DecodeData(raw []byte, out interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err == nil {
			if data, ok := envelope["data"]; ok && !isNull(data) {
				raw = data
			}
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
