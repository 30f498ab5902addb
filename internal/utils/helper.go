package utils

import (
	"log/slog"
	"os"
	"regexp"
	"unicode/utf8"
)

var (
	// Ocp-Apim-Subscription-Key: xxx, as it appears in dumped requests
	subscriptionHeaderPattern = regexp.MustCompile(`(?i)(Ocp-Apim-Subscription-Key:\s*)([^\s]+)`)
	// ?subscription-key=xxx, the query string form the service also accepts
	subscriptionQueryPattern = regexp.MustCompile(`([?&])(subscription-key|api[_\-]?[kK]ey|key)=([^&\s"]+)`)
	bearerPattern            = regexp.MustCompile(`Bearer\s+([A-Za-z0-9_\-\.]+)`)
)

// MaskSensitiveData masks subscription keys and tokens in strings
// so they never reach log output.
func MaskSensitiveData(s string) string {
	if s == "" {
		return s
	}

	s = subscriptionHeaderPattern.ReplaceAllString(s, `${1}***MASKED***`)
	s = subscriptionQueryPattern.ReplaceAllString(s, `${1}${2}=***MASKED***`)
	s = bearerPattern.ReplaceAllString(s, `Bearer ***MASKED***`)

	return s
}

// MaskSensitiveError wraps an error and masks sensitive data when the error is converted to string
func MaskSensitiveError(err error) error {
	if err == nil {
		return nil
	}
	return &maskedError{err: err}
}

type maskedError struct {
	err error
}

func (e *maskedError) Error() string {
	return MaskSensitiveData(e.err.Error())
}

func (e *maskedError) Unwrap() error {
	return e.err
}

// TruncateBody shortens a response body for use in error messages.
// Default maxLen is 500.
func TruncateBody(body []byte, maxLen ...int) string {
	limit := 500
	if len(maxLen) > 0 && maxLen[0] > 0 {
		limit = maxLen[0]
	}
	s := string(body)
	if len(s) <= limit {
		return s
	}

	// cut on a rune boundary
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "... (truncated)"
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", MaskSensitiveError(err))
	os.Exit(1)
}
