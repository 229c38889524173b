// Package params models classifier parameters and their projection onto domain field names.
package params

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindString is a single text value.
	KindString Kind = iota + 1
	// KindList is an ordered list of text values.
	KindList
	// KindNumber is a numeric value.
	KindNumber
)

// Value is a parameter value: a string, a list of strings, or a number.
type Value struct {
	kind Kind
	str  string
	list []string
	num  float64
}

// String creates a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List creates a list value.
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Number creates a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Kind returns the variant held by v. Zero for the zero Value.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Strings returns the non-blank text items of v, trimmed.
// Numbers render in their shortest decimal form.
func (v Value) Strings() []string {
	switch v.kind {
	case KindString:
		if s := strings.TrimSpace(v.str); s != "" {
			return []string{s}
		}
	case KindList:
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	case KindNumber:
		return []string{strconv.FormatFloat(v.num, 'f', -1, 64)}
	}
	return nil
}

// IsZero reports whether v carries nothing usable.
func (v Value) IsZero() bool { return len(v.Strings()) == 0 }

// First returns the first text item, or "".
func (v Value) First() string {
	items := v.Strings()
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

// Text joins all text items with ", ".
func (v Value) Text() string { return strings.Join(v.Strings(), ", ") }

// Params maps parameter names to values.
type Params map[string]Value

// Get returns the named value when it is present and non-empty.
func (p Params) Get(name string) (Value, bool) {
	v, ok := p[name]
	if !ok || v.IsZero() {
		return Value{}, false
	}
	return v, true
}

// Has reports whether the named parameter is present and non-empty.
func (p Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Any reports whether at least one of names is present.
func (p Params) Any(names ...string) bool {
	for _, n := range names {
		if p.Has(n) {
			return true
		}
	}
	return false
}

// Text returns the first text item of the named parameter.
func (p Params) Text(name string) string {
	v, _ := p.Get(name)
	return v.First()
}

// Collapse returns a copy where each of names keeps only its first item.
func (p Params) Collapse(names ...string) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, n := range names {
		if v, ok := out[n]; ok && v.Kind() == KindList {
			out[n] = String(v.First())
		}
	}
	return out
}

// Describe renders the non-empty parameters among names as `a, b / c` for user-facing text.
// Order follows names.
func (p Params) Describe(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if v, ok := p.Get(n); ok {
			parts = append(parts, strings.Join(v.Strings(), " / "))
		}
	}
	return strings.Join(parts, ", ")
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromAny converts a flattened payload value into a Value.
// Supported: string, []string, []any of scalars, float64/float32/int/int64, bool.
func FromAny(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return String(x), true
	case []string:
		return List(x...), true
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			if v, ok := FromAny(item); ok {
				items = append(items, v.Strings()...)
			}
		}
		return List(items...), true
	case float64:
		return Number(x), true
	case float32:
		return Number(float64(x)), true
	case int:
		return Number(float64(x)), true
	case int64:
		return Number(float64(x)), true
	case bool:
		return String(strconv.FormatBool(x)), true
	default:
		return Value{}, false
	}
}
