package filter

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
)

func TestNewContains_Validation(t *testing.T) {
	if _, err := NewContains("", "x"); err == nil {
		t.Error("expected error for empty field")
	}
	if _, err := NewContains("name", "  "); err == nil {
		t.Error("expected error for blank match")
	}
	c, err := NewContains("name", " Registrar ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Match() != "Registrar" {
		t.Errorf("match not trimmed: %q", c.Match())
	}
}

func TestBuilder_SingleString(t *testing.T) {
	expr, err := Contains("office_name", params.String("Registrar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := expr.String(); got != `office_name CONTAINS "Registrar"` {
		t.Errorf("String() = %s", got)
	}
}

func TestBuilder_AndAcrossFieldsOrWithinField(t *testing.T) {
	p := params.Params{
		"department_name": params.String("Computer"),
		"building":        params.List("Main", "Annex"),
	}
	expr, err := NewBuilder().FromParams(p, "department_name", "building").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `department_name CONTAINS "Computer" AND (building CONTAINS "Main" OR building CONTAINS "Annex")`
	if got := expr.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if len(expr.Groups()) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(expr.Groups()))
	}
	if len(expr.Groups()[1].Conditions()) != 2 {
		t.Errorf("expected 2 OR conditions on building")
	}
}

func TestBuilder_AbsentParamsAddNothing(t *testing.T) {
	p := params.Params{"office_name": params.String("")}
	expr, err := NewBuilder().FromParams(p, "office_name", "building").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expr.IsEmpty() {
		t.Errorf("expected empty expression, got %s", expr)
	}
}

func TestBuilder_SameFieldTwiceMerges(t *testing.T) {
	expr, err := NewBuilder().
		AddStrings("building", "Main").
		AddStrings("building", "Annex").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expr.Groups()) != 1 {
		t.Fatalf("expected one group, got %d", len(expr.Groups()))
	}
}

func TestBuilder_NumberValue(t *testing.T) {
	expr, err := Contains("year_level", params.Number(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := expr.String(); got != `year_level CONTAINS "2"` {
		t.Errorf("String() = %s", got)
	}
}

func TestBuilder_TooManyValues(t *testing.T) {
	values := make([]string, MaxValuesPerField+1)
	for i := range values {
		values[i] = strings.Repeat("x", i+1)
	}
	if _, err := NewBuilder().AddStrings("f", values...).Build(); err == nil {
		t.Fatal("expected error for too many values")
	}
}

func TestExpression_Matches(t *testing.T) {
	expr, err := NewBuilder().
		AddStrings("department_name", "computer").
		AddStrings("building", "Main", "Annex").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := map[string]string{
		"department_name": "Department of Computer Studies",
		"building":        "ANNEX Building",
	}
	if !expr.Matches(func(f string) string { return record[f] }) {
		t.Error("expected record to match")
	}

	record["building"] = "Gymnasium"
	if expr.Matches(func(f string) string { return record[f] }) {
		t.Error("expected record not to match once building differs")
	}
}

func TestExpression_EmptyMatchesEverything(t *testing.T) {
	var expr Expression
	if !expr.Matches(func(string) string { return "" }) {
		t.Error("empty expression should match")
	}
}
