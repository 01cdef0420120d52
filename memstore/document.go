package memstore

import (
	"fmt"
	"reflect"
	"strings"
)

// IDField is the primary key of every document.
const IDField = "_id"

// Document is a stored record. Values may be nested Documents or
// map[string]any.
type Document map[string]any

// ID returns the document's id, or "" when it has none.
func (d Document) ID() string {
	switch v := d[IDField].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Get returns the value at a dotted path.
func (d Document) Get(path string) (any, bool) {
	var cur any = d
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set stores value at a dotted path, creating intermediate documents.
func (d Document) Set(path string, value any) {
	keys := strings.Split(path, ".")
	m := map[string]any(d)
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMap(m[key])
		if !ok {
			next = map[string]any{}
			m[key] = Document(next)
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(d).(Document)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		out := make(Document, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Filter selects documents.
type Filter func(Document) bool

// All matches every document.
func All() Filter {
	return func(Document) bool { return true }
}

// Eq matches documents whose value at path equals value. Numbers compare by
// value regardless of their Go type.
func Eq(path string, value any) Filter {
	return func(d Document) bool {
		v, ok := d.Get(path)
		return ok && equal(v, value)
	}
}

// Lt matches documents whose value at path orders before value.
func Lt(path string, value any) Filter {
	return func(d Document) bool {
		v, ok := d.Get(path)
		return ok && orderable(v, value) && compare(v, value) < 0
	}
}

// Gt matches documents whose value at path orders after value.
func Gt(path string, value any) Filter {
	return func(d Document) bool {
		v, ok := d.Get(path)
		return ok && orderable(v, value) && compare(v, value) > 0
	}
}

// And matches documents that satisfy every filter.
func And(filters ...Filter) Filter {
	return func(d Document) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// Update modifies a matched document in place.
type Update func(Document)

// Set assigns value at path.
func Set(path string, value any) Update {
	return func(d Document) { d.Set(path, value) }
}

// Inc adds delta to the number at path. A missing or non-numeric value is
// replaced by delta.
func Inc(path string, delta int) Update {
	return func(d Document) {
		v, _ := d.Get(path)
		switch n := v.(type) {
		case int:
			d.Set(path, n+delta)
		case int32:
			d.Set(path, n+int32(delta))
		case int64:
			d.Set(path, n+int64(delta))
		case float64:
			d.Set(path, n+float64(delta))
		default:
			d.Set(path, delta)
		}
	}
}

// Unset removes a top-level field.
func Unset(field string) Update {
	return func(d Document) { delete(d, field) }
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

// compare orders numbers numerically and strings lexically. Other values
// and mismatched kinds compare equal.
func compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb)
	}
	return 0
}

// orderable reports whether compare can order a and b.
func orderable(a, b any) bool {
	_, na := toFloat(a)
	_, nb := toFloat(b)
	if na && nb {
		return true
	}
	_, sa := a.(string)
	_, sb := b.(string)
	return sa && sb
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
