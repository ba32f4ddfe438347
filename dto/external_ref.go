package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExternalRef is an identifier from the WordPress export. Exports send it
// either as a JSON string or as a number; both decode to the same text.
type ExternalRef string

func (r *ExternalRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = ExternalRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("external ref must be a string or number: %w", err)
	}
	*r = ExternalRef(n.String())
	return nil
}

func (r ExternalRef) String() string { return string(r) }
