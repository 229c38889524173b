package chi

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxQueryRunes caps the inbound message length.
const maxQueryRunes = 1000

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup and collapses whitespace.
func sanitizeText(s string) string {
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
