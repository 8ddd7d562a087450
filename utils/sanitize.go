package utils

import "github.com/microcosm-cc/bluemonday"

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks, keeping benign markup.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// SanitizeStrict strips all markup; used for plain-text fields like titles.
func SanitizeStrict(input string) string {
	return stripper.Sanitize(input)
}
