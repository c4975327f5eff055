package tokenizer

import "errors"

// CountText estimates tokens for an assembled snapshot.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errors.New("nil tokenizer counter")
	}
	return counter.CountString(text)
}
