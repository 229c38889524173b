// Package route normalizes classifier actions and intent names onto query domains.
//
// Two dispatch styles exist: the domain-scoped routers match the exact action
// string against a closed table, and the top-level router falls back to keyword
// matching on the intent display name. Both end in a Domain value; nothing past
// this package looks at the raw strings.
package route

import (
	"strings"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
)

// Domain is one subject area with its own search service.
type Domain string

// Query domains.
const (
	Offices       Domain = "offices"
	Departments   Domain = "departments"
	Scholarships  Domain = "scholarships"
	Courses       Domain = "courses"
	Contacts      Domain = "contacts"
	Organizations Domain = "organizations"
	Programs      Domain = "programs"
	School        Domain = "school"
	Officials     Domain = "officials"
	Enrollment    Domain = "enrollment"
	Navigation    Domain = "navigation"
	Developers    Domain = "developers"
)

// All lists every domain in a stable order.
var All = []Domain{
	Offices, Departments, Scholarships, Courses, Contacts, Organizations,
	Programs, School, Officials, Enrollment, Navigation, Developers,
}

// Parse returns the Domain named s.
func Parse(s string) (Domain, bool) {
	for _, d := range All {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// Action is one entry of the action table.
type Action struct {
	Name   string
	Domain Domain
	// Remap projects NLU parameter names onto the domain's names.
	Remap params.Remap
	// Implied parameters are added when the classifier did not send them,
	// so that e.g. get_office_contact selects the contact view.
	Implied params.Params
}

// Params projects raw classifier parameters for this action.
func (a Action) Params(raw params.Params) params.Params {
	out := a.Remap.Apply(raw)
	for k, v := range a.Implied {
		if !out.Has(k) {
			out[k] = v
		}
	}
	return out
}

// Target is the normalized dispatch decision.
type Target struct {
	Domain Domain
	Action Action
	// ByIntent is set when the domain came from intent-name keywords.
	ByIntent bool
}

// Lookup finds an action by exact, case-sensitive name.
func Lookup(action string) (Action, bool) {
	a, ok := actionIndex[action]
	return a, ok
}

// ResolveAction is the domain-scoped router: only actions of d are accepted.
func ResolveAction(d Domain, action string) (Target, bool) {
	a, ok := Lookup(action)
	if !ok || a.Domain != d {
		return Target{}, false
	}
	return Target{Domain: d, Action: a}, true
}

// Resolve is the top-level router: exact action first, intent keywords second.
func Resolve(action, intent string) (Target, bool) {
	if a, ok := Lookup(action); ok {
		return Target{Domain: a.Domain, Action: a}, true
	}

	name := strings.ToLower(intent)
	if name == "" {
		return Target{}, false
	}
	for _, kw := range intentKeywords {
		for _, word := range kw.words {
			if strings.Contains(name, word) {
				return Target{
					Domain:   kw.domain,
					Action:   Action{Name: action, Domain: kw.domain, Remap: defaultRemaps[kw.domain]},
					ByIntent: true,
				}, true
			}
		}
	}
	return Target{}, false
}

// Actions returns the action table entries of d in table order.
func Actions(d Domain) []Action {
	var out []Action
	for _, a := range actions {
		if a.Domain == d {
			out = append(out, a)
		}
	}
	return out
}

var actionIndex = func() map[string]Action {
	m := make(map[string]Action, len(actions))
	for _, a := range actions {
		m[a.Name] = a
	}
	return m
}()
