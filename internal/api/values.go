package api

import (
	"fmt"
	"strconv"
	"strings"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

// Value is a single endpoint parameter or body field.
// Build one with String, Int, Float, Bool, or List.
type Value struct {
	kind  valueKind
	str   string
	i     int64
	f     float64
	b     bool
	items []string
}

// String wraps a string value.
func String(s string) Value { return Value{kind: kindString, str: s} }

// Int wraps an integer value.
func Int(n int64) Value { return Value{kind: kindInt, i: n} }

// Float wraps a floating point value.
func Float(f float64) Value { return Value{kind: kindFloat, f: f} }

// Bool wraps a boolean. Its wire form depends on where it is encoded.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// List wraps a list of strings. Endpoint paths join it with ";" and form
// bodies with ",".
func List(items ...string) Value { return Value{kind: kindList, items: items} }

// ValueOf converts common Go values into a Value. Anything it does not
// recognise is rendered with fmt.Sprint.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case []string:
		return List(x...)
	case fmt.Stringer:
		return String(x.String())
	default:
		return String(fmt.Sprint(v))
	}
}

// render returns the textual form of v. Booleans use the given literals.
func (v Value) render(trueLit, falseLit string) string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindBool:
		if v.b {
			return trueLit
		}
		return falseLit
	case kindList:
		return strings.Join(v.items, ";")
	default:
		return v.str
	}
}

// String implements fmt.Stringer using the on/off boolean form.
func (v Value) String() string {
	return v.render("on", "off")
}

// Param is one key/value pair. Order is preserved on the wire.
type Param struct {
	Key   string
	Value Value
}

// Params is an ordered parameter list.
type Params []Param

// Add appends key with the converted value and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: ValueOf(value)})
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (Value, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return Value{}, false
}

// P builds Params from alternating key/value arguments.
// A trailing key without a value is ignored.
func P(kv ...any) Params {
	params := make(Params, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		params = params.Add(key, kv[i+1])
	}
	return params
}
