// Package transformation composes qualifiers into stages (actions) and
// stages into the ordered transformation path of a delivery URL.
package transformation

import (
	"encoding/json"
	"sort"
	"strings"

	"cldurl/core/qualifier"
)

// Action is one transformation stage. Qualifiers are keyed: adding a
// qualifier whose key is already present replaces it.
type Action struct {
	condition qualifier.Qualifier
	params    map[string]qualifier.Qualifier
	detected  map[string]qualifier.Qualifier
	variables []qualifier.Qualifier
	raw       []string
}

// NewAction creates an action holding qs
func NewAction(qs ...qualifier.Qualifier) *Action {
	a := &Action{}
	return a.Add(qs...)
}

// Add sets qualifiers on the action. An "if" qualifier becomes the stage
// condition and $name qualifiers become detected variables.
func (a *Action) Add(qs ...qualifier.Qualifier) *Action {
	for _, q := range qs {
		switch {
		case q.Key == "":
			continue
		case q.Key == qualifier.KeyFor(qualifier.KindIf):
			a.condition = q
		case q.IsVariable():
			if a.detected == nil {
				a.detected = make(map[string]qualifier.Qualifier)
			}
			a.detected[q.Key] = q
		default:
			if a.params == nil {
				a.params = make(map[string]qualifier.Qualifier)
			}
			a.params[q.Key] = q
		}
	}
	return a
}

// If sets the stage condition
func (a *Action) If(condition interface{}) *Action {
	a.condition = qualifier.If(condition)
	return a
}

// Variables appends explicit variable assignments. Their order is kept since
// later assignments may reference earlier ones.
func (a *Action) Variables(qs ...qualifier.Qualifier) *Action {
	for _, q := range qs {
		if !q.IsEmpty() {
			a.variables = append(a.variables, q)
		}
	}
	return a
}

// Raw appends a verbatim component after the sorted qualifiers
func (a *Action) Raw(s string) *Action {
	if s != "" {
		a.raw = append(a.raw, s)
	}
	return a
}

// Get returns the qualifier stored under key
func (a *Action) Get(key string) (qualifier.Qualifier, bool) {
	if a == nil {
		return qualifier.Qualifier{}, false
	}
	if key == a.condition.Key && key != "" {
		return a.condition, true
	}
	if q, ok := a.detected[key]; ok {
		return q, true
	}
	q, ok := a.params[key]
	return q, ok
}

// Qualifiers returns the qualifiers in serialization order
func (a *Action) Qualifiers() []qualifier.Qualifier {
	if a == nil {
		return nil
	}
	var out []qualifier.Qualifier
	if !a.condition.IsEmpty() {
		out = append(out, a.condition)
	}
	out = append(out, sortedByString(a.detected, func(q qualifier.Qualifier) string { return q.Key })...)
	out = append(out, a.variables...)
	return append(out, sortedByString(a.params, qualifier.Qualifier.String)...)
}

func sortedByString(m map[string]qualifier.Qualifier, by func(qualifier.Qualifier) string) []qualifier.Qualifier {
	out := make([]qualifier.Qualifier, 0, len(m))
	for _, q := range m {
		if !q.IsEmpty() {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return by(out[i]) < by(out[j]) })
	return out
}

// String serializes the stage: condition, variables, sorted qualifiers, raw
func (a *Action) String() string {
	if a == nil {
		return ""
	}
	qs := a.Qualifiers()
	parts := make([]string, 0, len(qs)+len(a.raw))
	for _, q := range qs {
		parts = append(parts, q.String())
	}
	parts = append(parts, a.raw...)
	return strings.Join(parts, ",")
}

// IsEmpty reports whether the stage serializes to nothing
func (a *Action) IsEmpty() bool {
	return a.String() == ""
}

// Clone returns an independent copy
func (a *Action) Clone() *Action {
	if a == nil {
		return nil
	}
	out := &Action{
		condition: a.condition,
		variables: append([]qualifier.Qualifier(nil), a.variables...),
		raw:       append([]string(nil), a.raw...),
	}
	if a.params != nil {
		out.params = make(map[string]qualifier.Qualifier, len(a.params))
		for k, v := range a.params {
			out.params[k] = v
		}
	}
	if a.detected != nil {
		out.detected = make(map[string]qualifier.Qualifier, len(a.detected))
		for k, v := range a.detected {
			out.detected[k] = v
		}
	}
	return out
}

// MarshalJSON emits the qualifiers in serialization order followed by the raw
// components, matching String
func (a *Action) MarshalJSON() ([]byte, error) {
	qs := a.Qualifiers()
	if qs == nil {
		qs = []qualifier.Qualifier{}
	}
	var raw []string
	if a != nil {
		raw = a.raw
	}
	return json.Marshal(struct {
		Qualifiers []qualifier.Qualifier `json:"qualifiers"`
		Raw        []string              `json:"raw,omitempty"`
	}{qs, raw})
}
