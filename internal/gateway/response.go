package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is a parsed backend reply. The endpoint is treated as untrusted:
// every accessor tolerates a missing or oddly typed field.
type Response map[string]any

// OK reports the business-level success flag.
func (r Response) OK() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// Message returns the backend's message field, if any.
func (r Response) Message() string {
	return r.Str("message")
}

func (r Response) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int reads a numeric field, accepting the number-or-quoted-string shapes
// the spreadsheet backend produces.
func (r Response) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

// Decode unmarshals one response field into v, going back through JSON so
// custom field decoders apply.
func (r Response) Decode(key string, v any) error {
	raw, ok := r[key]
	if !ok {
		return fmt.Errorf("response has no %q field", key)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("re-encode %q field: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %q field: %w", key, err)
	}
	return nil
}
