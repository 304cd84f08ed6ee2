package password

import (
	"encoding/base64"
	"unicode/utf8"
)

// The platform obfuscates passwords with plain base64 before sending or
// storing them. This is the documented demo scheme, not encryption, and
// nothing here should be treated as a security boundary.

// Encode obfuscates a password: UTF-8 bytes to base64 text.
func Encode(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// Decode reverses Encode. Malformed or non-UTF-8 input yields the empty
// string, never an error.
func Decode(encoded string) string {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	if !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}
