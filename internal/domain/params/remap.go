package params

import "strings"

// Transform normalizes a value while it is remapped.
type Transform string

const (
	// Keep leaves the value untouched.
	Keep Transform = ""
	// First keeps only the first list element.
	First Transform = "first"
	// Lower lowercases every text item.
	Lower Transform = "lower"
	// Upper uppercases every text item.
	Upper Transform = "upper"
	// Trim strips surrounding whitespace and drops blank items.
	Trim Transform = "trim"
)

// Mapping projects one NLU parameter onto one domain parameter.
type Mapping struct {
	From      string
	To        string
	Transform Transform
}

// Remap is a declarative NLU -> domain parameter table.
// Parameters not listed pass through under their own name.
type Remap []Mapping

// Apply projects in onto domain names. Earlier mappings win when two sources
// target the same domain name.
func (r Remap) Apply(in Params) Params {
	out := make(Params, len(in))
	mapped := make(map[string]struct{}, len(r))

	for _, m := range r {
		mapped[m.From] = struct{}{}
		v, ok := in.Get(m.From)
		if !ok {
			continue
		}
		if existing, taken := out.Get(m.To); taken && !existing.IsZero() {
			continue
		}
		out[m.To] = m.Transform.apply(v)
	}

	for k, v := range in {
		if _, ok := mapped[k]; ok {
			continue
		}
		if _, taken := out[k]; taken {
			continue
		}
		out[k] = v
	}
	return out
}

func (t Transform) apply(v Value) Value {
	switch t {
	case First:
		return String(v.First())
	case Lower:
		return mapStrings(v, strings.ToLower)
	case Upper:
		return mapStrings(v, strings.ToUpper)
	case Trim:
		return mapStrings(v, strings.TrimSpace)
	default:
		return v
	}
}

func mapStrings(v Value, fn func(string) string) Value {
	switch v.Kind() {
	case KindString:
		return String(fn(v.First()))
	case KindList:
		items := v.Strings()
		for i := range items {
			items[i] = fn(items[i])
		}
		return List(items...)
	default:
		return v
	}
}
