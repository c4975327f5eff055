package utils

import "unicode/utf8"

// DecodeText interprets data as UTF-8 text. The second result is false when
// the bytes cannot be decoded, in which case the file is treated as unreadable.
func DecodeText(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return EmptyString, false
	}
	return string(data), true
}
