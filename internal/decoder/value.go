package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name used in error messages
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is a single key/value pair of an object. Objects keep their
// members in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a loosely-typed JSON tree as produced by a successful parse of
// model output. Exactly one of the payload fields is meaningful, selected
// by Kind.
type Value struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	Str    string
	Array  []Value
	Object []Member
}

// Null is the zero Value.
var Null = Value{}

// StringValue wraps s in a Value
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// ArrayValue wraps items in a Value
func ArrayValue(items ...Value) Value {
	return Value{Kind: KindArray, Array: items}
}

// ObjectValue builds an object Value from members, preserving their order
func ObjectValue(members ...Member) Value {
	return Value{Kind: KindObject, Object: members}
}

// Get returns the value stored under key. When an object repeats a key the
// last occurrence wins, matching how strict parsers collapse duplicates.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Null, false
	}
	for i := len(v.Object) - 1; i >= 0; i-- {
		if v.Object[i].Key == key {
			return v.Object[i].Value, true
		}
	}
	return Null, false
}

// First returns the value of the first key whose value is truthy. Empty
// strings, empty containers, zero, false and null fall through to the next
// key. Null is returned when no key matches.
func (v Value) First(keys ...string) Value {
	for _, key := range keys {
		if child, ok := v.Get(key); ok && child.Truthy() {
			return child
		}
	}
	return Null
}

// Truthy reports whether the value counts as present for alias resolution.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		f, err := v.Number.Float64()
		return err != nil || f != 0
	case KindString:
		return v.Str != ""
	case KindArray:
		return len(v.Array) > 0
	case KindObject:
		return len(v.Object) > 0
	default:
		return false
	}
}

// Text coerces the value to a string. Scalars render as their literal text,
// containers as compact JSON and null as the empty string.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Number.String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindArray, KindObject:
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// Items returns the elements of an array. Any other non-null value is
// treated as a one-element sequence.
func (v Value) Items() []Value {
	switch v.Kind {
	case KindArray:
		return v.Array
	case KindNull:
		return nil
	default:
		return []Value{v}
	}
}

// MarshalJSON encodes the tree back to JSON, keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.Number.String())
	case KindString:
		b, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Object {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode value of %s", v.Kind)
	}
	return nil
}

// Parse strictly parses text as a single JSON document. No leniency is
// applied here; repairs happen before text reaches the parser.
func Parse(text string) (Value, error) {
	data := []byte(strings.TrimSpace(text))
	if !json.Valid(data) {
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			return Null, err
		}
		return Null, fmt.Errorf("invalid JSON document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Value{Kind: KindObject, Object: []Member{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null, fmt.Errorf("unexpected object key %v", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return Null, err
				}
				obj.Object = append(obj.Object, Member{Key: key, Value: child})
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return obj, nil
		case '[':
			arr := Value{Kind: KindArray, Array: []Value{}}
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return Null, err
				}
				arr.Array = append(arr.Array, child)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return arr, nil
		}
		return Null, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return StringValue(t), nil
	case json.Number:
		return Value{Kind: KindNumber, Number: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Null, nil
	}
	return Null, fmt.Errorf("unexpected token %v", tok)
}
