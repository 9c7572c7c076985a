package transformation

import (
	"encoding/json"
	"strings"

	"cldurl/core/qualifier"
)

// Component is anything that can be appended to a Transformation:
// *Action, *Transformation, Named or a single qualifier.Qualifier
type Component interface {
	String() string
}

// Named is a pre-serialized stage used verbatim, typically a named
// transformation reference or a stage kept from another transformation
type Named string

func (n Named) String() string {
	return string(n)
}

// Transformation is an ordered list of stages applied left to right
type Transformation struct {
	stages []Component
	raw    string
}

// New creates a transformation from components
func New(components ...Component) *Transformation {
	t := &Transformation{}
	return t.Append(components...)
}

// Append adds components as trailing stages. Nested transformations are
// flattened; a lone qualifier becomes a stage of its own.
func (t *Transformation) Append(components ...Component) *Transformation {
	t.stages = append(t.stages, flatten(components)...)
	return t
}

// AppendQualifiers adds one stage holding qs
func (t *Transformation) AppendQualifiers(qs ...qualifier.Qualifier) *Transformation {
	return t.Append(NewAction(qs...))
}

// Prepend inserts components ahead of the existing stages
func (t *Transformation) Prepend(components ...Component) *Transformation {
	t.stages = append(flatten(components), t.stages...)
	return t
}

// Raw sets a verbatim final stage
func (t *Transformation) Raw(s string) *Transformation {
	t.raw = s
	return t
}

func flatten(components []Component) []Component {
	var out []Component
	for _, c := range components {
		switch x := c.(type) {
		case nil:
		case *Transformation:
			if x == nil {
				continue
			}
			out = append(out, x.Clone().stages...)
			if x.raw != "" {
				out = append(out, Named(x.raw))
			}
		case *Action:
			if x != nil {
				out = append(out, x)
			}
		case qualifier.Qualifier:
			out = append(out, NewAction(x))
		default:
			out = append(out, c)
		}
	}
	return out
}

// Stages returns the serialized non-empty stages
func (t *Transformation) Stages() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.stages)+1)
	for _, s := range t.stages {
		if str := s.String(); str != "" {
			out = append(out, str)
		}
	}
	if t.raw != "" {
		out = append(out, t.raw)
	}
	return out
}

// Actions returns the stages that are actions
func (t *Transformation) Actions() []*Action {
	if t == nil {
		return nil
	}
	var out []*Action
	for _, s := range t.stages {
		if a, ok := s.(*Action); ok {
			out = append(out, a)
		}
	}
	return out
}

// String joins the non-empty stages with '/'
func (t *Transformation) String() string {
	return strings.Join(t.Stages(), "/")
}

// IsEmpty reports whether the transformation serializes to nothing
func (t *Transformation) IsEmpty() bool {
	return len(t.Stages()) == 0
}

// Clone returns an independent copy
func (t *Transformation) Clone() *Transformation {
	if t == nil {
		return nil
	}
	out := &Transformation{raw: t.raw, stages: make([]Component, len(t.stages))}
	for i, s := range t.stages {
		if a, ok := s.(*Action); ok {
			out.stages[i] = a.Clone()
			continue
		}
		out.stages[i] = s
	}
	return out
}

// MarshalJSON emits the serialized stages
func (t *Transformation) MarshalJSON() ([]byte, error) {
	stages := t.Stages()
	if stages == nil {
		stages = []string{}
	}
	return json.Marshal(stages)
}
