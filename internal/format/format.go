// Package format turns school records into user-facing text.
//
// Every function here is pure. Optional fields are checked one by one and left
// out when empty; nothing renders as a blank label.
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Field truncation limits used by multi-record summaries.
const (
	ShortField  = 40
	MediumField = 80
	LongField   = 150
)

var printer = message.NewPrinter(language.English)

// Peso renders an amount in Philippine pesos with thousands grouping:
// 15000 -> "₱15,000", 1250.5 -> "₱1,250.50".
func Peso(amount float64) string {
	if amount == math.Trunc(amount) {
		return "₱" + printer.Sprintf("%d", int64(amount))
	}
	return "₱" + printer.Sprintf("%.2f", amount)
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}

// field is one labeled line of a record block.
type field struct {
	label string
	value string
}

func kv(label, value string) field { return field{label: label, value: strings.TrimSpace(value)} }

// block renders a title followed by "Label: value" lines, skipping empty values.
func block(title string, fields ...field) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(title))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(f.value)
	}
	return b.String()
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Items splits a newline- or semicolon-separated list into trimmed items.
func Items(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "-•* ")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Numbered renders items as "1. a\n2. b".
func Numbered(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, it)
	}
	return b.String()
}

// Bulleted renders items as "- a\n- b".
func Bulleted(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(it)
	}
	return b.String()
}

// listing renders a titled list, or "" when s has no items.
func listing(title, s string, numbered bool) string {
	items := Items(s)
	if len(items) == 0 {
		return ""
	}
	if numbered {
		return title + "\n" + Numbered(items)
	}
	return title + "\n" + Bulleted(items)
}

// Found is the header every multi-record summary starts with.
func Found(n int, plural string) string {
	return fmt.Sprintf("Found %d %s:", n, plural)
}

// Summary renders many records. Up to threshold records get the full detail
// block; above it each record collapses to a single brief line.
func Summary[T any](plural string, items []T, threshold int, detail, brief func(T) string) string {
	var b strings.Builder
	b.WriteString(Found(len(items), plural))

	if len(items) <= threshold {
		for i, it := range items {
			lines := strings.Split(detail(it), "\n")
			fmt.Fprintf(&b, "\n\n%d. %s", i+1, lines[0])
			for _, l := range lines[1:] {
				b.WriteString("\n   ")
				b.WriteString(l)
			}
		}
		return b.String()
	}

	for i, it := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, brief(it))
	}
	return b.String()
}

// dash joins a name and an optional trailing detail with " - ".
func dash(name, detail string) string {
	return joinNonEmpty(" - ", name, detail)
}

const (
	notFoundPrefix   = "No "
	notFoundMarker   = " matched"
	needDetailPrefix = "Please be more specific"
)

// NotFound is the zero-result reply. criteria may be empty.
func NotFound(plural, criteria string) string {
	if criteria == "" {
		return fmt.Sprintf("No %s matched your query.", plural)
	}
	return fmt.Sprintf("No %s matched %q.", plural, criteria)
}

// NeedDetail asks the user to narrow an empty query down.
func NeedDetail(hint string) string {
	return needDetailPrefix + ": " + hint
}

// IsSentinel reports whether text is a not-found or need-more-detail reply.
func IsSentinel(text string) bool {
	if strings.HasPrefix(text, needDetailPrefix) {
		return true
	}
	if !strings.HasPrefix(text, notFoundPrefix) {
		return false
	}
	line, _, _ := strings.Cut(text, "\n")
	return strings.Contains(line, notFoundMarker)
}
