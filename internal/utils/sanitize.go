package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// commentPolicy strips all markup from comments except a small
// inline-emphasis allow-list. Script and style contents are dropped
// entirely, plain text survives.
var commentPolicy = bluemonday.NewPolicy().AllowElements("b", "i", "strong", "em")

// SanitizeComment cleans user-submitted comment markup and trims
// surrounding whitespace. The result may be empty.
func SanitizeComment(body string) string {
	return strings.TrimSpace(commentPolicy.Sanitize(body))
}
