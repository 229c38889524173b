// Package style picks the prompt template used to rephrase a search result.
package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/campusbot/internal/format"
)

// Name identifies a presentation style.
type Name string

// Presentation styles.
const (
	SingleLine Name = "single-line"
	Bulletin   Name = "bulletin"
	Table      Name = "table"
	StepByStep Name = "step-by-step"
)

// Template is a rephrasing prompt for one presentation style.
type Template struct {
	Name         Name
	Instructions string
}

// Render builds the prompt handed to the generative model.
func (t Template) Render(message, result string) string {
	var b strings.Builder
	b.WriteString("You are a helpful school information assistant.\n")
	b.WriteString(t.Instructions)
	b.WriteString("\nOnly use facts from the data below. Do not invent names, dates or amounts.")
	fmt.Fprintf(&b, "\n\nStudent question:\n%s\n\nData:\n%s", strings.TrimSpace(message), strings.TrimSpace(result))
	return b.String()
}

var templates = map[Name]Template{
	SingleLine: {
		Name:         SingleLine,
		Instructions: "Answer in one or two friendly sentences. Keep every fact from the data.",
	},
	Bulletin: {
		Name:         Bulletin,
		Instructions: "Answer with a short intro line followed by a bulleted list, one item per entry.",
	},
	Table: {
		Name: Table,
		Instructions: "Answer with a short intro line followed by a compact list that keeps the " +
			"numbering of the data. Put each entry's key details on its own line.",
	},
	StepByStep: {
		Name:         StepByStep,
		Instructions: "Answer as numbered steps the student can follow in order. Keep every step from the data.",
	},
}

// Get returns the template named n, falling back to single-line.
func Get(n Name) Template {
	if t, ok := templates[n]; ok {
		return t
	}
	return templates[SingleLine]
}

// actions with a known presentation, regardless of result shape.
var actionStyles = map[string]Name{
	"list_scholarships_by_category": Bulletin,
	"get_all_scholarships":          Bulletin,
	"list_orgs_by_category":         Bulletin,
	"get_all_orgs":                  Bulletin,
	"get_all_offices":               Bulletin,
	"get_all_departments":           Bulletin,
	"get_all_programs":              Bulletin,
	"get_all_officials":             Bulletin,
	"get_course_list":               Table,
	"get_enrollment_info":           StepByStep,
	"get_enrollment_requirements":   StepByStep,
	"get_directions":                StepByStep,
}

var numbered = regexp.MustCompile(`(?m)^\s*\d+\.`)

// Pick chooses the template for a formatted result. The first matching rule wins:
// sentinel replies stay single-line, known actions use their listed style, and
// list-shaped results become tables.
func Pick(result, action string) Template {
	if format.IsSentinel(result) {
		return templates[SingleLine]
	}
	if n, ok := actionStyles[action]; ok {
		return templates[n]
	}
	if tabular(result) {
		return templates[Table]
	}
	return templates[SingleLine]
}

func tabular(result string) bool {
	if len(numbered.FindAllStringIndex(result, -1)) >= 2 {
		return true
	}
	lines := strings.Split(strings.TrimSpace(result), "\n")
	return len(lines) >= 4 && strings.HasPrefix(lines[0], "Found ")
}

// Open builds the prompt for a question answered without database facts.
func Open(message string) string {
	return "You are a helpful school information assistant. Answer the student's question " +
		"briefly and politely. If you are not sure about school-specific facts, say so and " +
		"suggest contacting the relevant office.\n\nStudent question:\n" + strings.TrimSpace(message)
}
