// Package filter builds case-insensitive partial-match conditions over entity fields.
//
// A single value yields one condition, several values for one field are OR-ed
// into a group, and groups on distinct fields are AND-ed into an Expression.
package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
)

// MaxValuesPerField caps how many alternatives one field may carry.
const MaxValuesPerField = 32

// Condition is a single clause: Field contains Match, ignoring case.
type Condition struct {
	field string
	match string
}

// NewContains creates a substring condition.
func NewContains(field, match string) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if strings.TrimSpace(match) == "" {
		return Condition{}, fmt.Errorf("match value is required for field %q", field)
	}
	return Condition{field: field, match: strings.TrimSpace(match)}, nil
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Match returns the substring to look for.
func (c Condition) Match() string { return c.match }

func (c Condition) String() string {
	return fmt.Sprintf("%s CONTAINS %q", c.field, c.match)
}

// Group is the OR of conditions on one field.
type Group struct {
	field      string
	conditions []Condition
}

// Field returns the field every condition in the group targets.
func (g Group) Field() string { return g.field }

// Conditions returns the alternatives.
func (g Group) Conditions() []Condition { return g.conditions }

func (g Group) String() string {
	if len(g.conditions) == 1 {
		return g.conditions[0].String()
	}
	parts := make([]string, len(g.conditions))
	for i, c := range g.conditions {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// Expression is the AND of per-field groups.
type Expression struct {
	groups []Group
}

// Groups returns the per-field groups in insertion order.
func (e Expression) Groups() []Group { return e.groups }

// IsEmpty reports whether the expression constrains nothing.
func (e Expression) IsEmpty() bool { return len(e.groups) == 0 }

// String renders the expression, e.g. `a CONTAINS "x" AND (b CONTAINS "y" OR b CONTAINS "z")`.
func (e Expression) String() string {
	parts := make([]string, len(e.groups))
	for i, g := range e.groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, " AND ")
}

// Matches evaluates the expression in memory. get returns a record's field text.
func (e Expression) Matches(get func(field string) string) bool {
	for _, g := range e.groups {
		value := strings.ToLower(get(g.field))
		hit := false
		for _, c := range g.conditions {
			if strings.Contains(value, strings.ToLower(c.match)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Builder accumulates per-field groups.
type Builder struct {
	groups []Group
	index  map[string]int
	err    error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add appends one alternative per text item of v to field's group.
// Zero values add nothing.
func (b *Builder) Add(field string, v params.Value) *Builder {
	return b.AddStrings(field, v.Strings()...)
}

// AddStrings is Add for raw strings. Blank strings are skipped.
func (b *Builder) AddStrings(field string, values ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		c, err := NewContains(field, raw)
		if err != nil {
			b.err = err
			return b
		}
		i, ok := b.index[field]
		if !ok {
			b.groups = append(b.groups, Group{field: field})
			i = len(b.groups) - 1
			b.index[field] = i
		}
		if len(b.groups[i].conditions) >= MaxValuesPerField {
			b.err = fmt.Errorf("too many values for field %q (max %d)", field, MaxValuesPerField)
			return b
		}
		b.groups[i].conditions = append(b.groups[i].conditions, c)
	}
	return b
}

// FromParams adds one group for every field in fields that p supplies.
func (b *Builder) FromParams(p params.Params, fields ...string) *Builder {
	for _, f := range fields {
		if v, ok := p.Get(f); ok {
			b.Add(f, v)
		}
	}
	return b
}

// Build returns the expression or the first error met while adding.
func (b *Builder) Build() (Expression, error) {
	if b.err != nil {
		return Expression{}, b.err
	}
	groups := make([]Group, len(b.groups))
	copy(groups, b.groups)
	return Expression{groups: groups}, nil
}

// Contains is a shortcut for a single-field expression.
func Contains(field string, v params.Value) (Expression, error) {
	return NewBuilder().Add(field, v).Build()
}
