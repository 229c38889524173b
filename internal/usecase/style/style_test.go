package style

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/campusbot/internal/format"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name   string
		result string
		action string
		want   Name
	}{
		{"not found wins over action", format.NotFound("scholarships", "category: sports"), "list_scholarships_by_category", SingleLine},
		{"need detail", format.NeedDetail("which course?"), "get_course_list", SingleLine},
		{"listing action", "Found 1 scholarships:\n\n1. CHED", "list_scholarships_by_category", Bulletin},
		{"course list action", "CS101 - Intro", "get_course_list", Table},
		{"procedural action", "Steps for Freshmen:", "get_enrollment_info", StepByStep},
		{"numbered markers", "Steps:\n1. Fill form\n2. Pay", "get_office_info", Table},
		{"found header with four lines", "Found 3 offices:\nRegistrar\nCashier\nLibrary", "", Table},
		{"found header too short", "Found 2 offices:\nRegistrar", "", SingleLine},
		{"single record", "Registrar\nLocation: Main", "get_office_info", SingleLine},
		{"unknown action plain", "The Registrar is open 8AM-5PM.", "unknown", SingleLine},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Pick(tc.result, tc.action)
			if got.Name != tc.want {
				t.Errorf("Pick() = %s, want %s", got.Name, tc.want)
			}
		})
	}
}

func TestPick_Deterministic(t *testing.T) {
	result := "Found 5 courses:\n1. CS101\n2. CS102\n3. CS103\n4. CS104\n5. CS105"
	first := Pick(result, "get_course_info")
	for range 100 {
		if got := Pick(result, "get_course_info"); got != first {
			t.Fatalf("Pick changed between calls: %s vs %s", got.Name, first.Name)
		}
	}
}

func TestTemplate_Render(t *testing.T) {
	out := Get(StepByStep).Render("  how do I enroll? ", "1. Fill form\n2. Pay")
	if !strings.Contains(out, "Student question:\nhow do I enroll?") {
		t.Errorf("missing question: %q", out)
	}
	if !strings.HasSuffix(out, "Data:\n1. Fill form\n2. Pay") {
		t.Errorf("missing data: %q", out)
	}
	if !strings.Contains(out, "numbered steps") {
		t.Errorf("missing style instructions: %q", out)
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	if Get("fancy").Name != SingleLine {
		t.Error("unknown style should fall back to single-line")
	}
}

func TestOpen(t *testing.T) {
	out := Open(" what is love? ")
	if !strings.HasSuffix(out, "Student question:\nwhat is love?") {
		t.Errorf("got %q", out)
	}
}
