package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormValue is a form field that may arrive as a JSON string or number.
// Fields are kept as typed so validation can reject what does not parse.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = FormValue(n.String())
		return nil
	}
}

func (v FormValue) Trimmed() string {
	return strings.TrimSpace(string(v))
}

// optionalString maps a blank field to nil
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
