package qualifier

import (
	"encoding/json"
	"strings"
)

// Qualifier is one transformation instruction
type Qualifier struct {
	Key   string
	Value Value
}

// New builds a qualifier whose key comes from the kind registry
func New(kind Kind, values ...interface{}) Qualifier {
	return Qualifier{Key: KeyFor(kind), Value: NewValue(values...)}
}

// Generic builds a qualifier with an explicit key
func Generic(key string, values ...interface{}) Qualifier {
	return Qualifier{Key: key, Value: NewValue(values...)}
}

// WithValue builds a qualifier from an already normalized value
func WithValue(key string, value Value) Qualifier {
	return Qualifier{Key: key, Value: value}
}

// IsEmpty reports whether the qualifier serializes to nothing
func (q Qualifier) IsEmpty() bool {
	return q.Key == "" || q.Value.IsEmpty()
}

// IsVariable reports whether the qualifier assigns a user variable ($name)
func (q Qualifier) IsVariable() bool {
	return strings.HasPrefix(q.Key, "$")
}

// String returns key_value, or "" when the value is empty
func (q Qualifier) String() string {
	if q.IsEmpty() {
		return ""
	}
	return q.Key + "_" + q.Value.String()
}

// MarshalJSON emits the key and serialized value for inspection
func (q Qualifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}{q.Key, q.Value.String()})
}
