package core

import "strings"

// ParseAnswer interprets a raw answer body as a boolean. The body is
// trimmed and case-folded before matching; "true" and "yes" mean the
// word is in the dictionary, "false" and "no" mean it is not. Anything
// else returns ErrUnparseableAnswer.
func ParseAnswer(body []byte) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(body))) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	default:
		return false, ErrUnparseableAnswer
	}
}
