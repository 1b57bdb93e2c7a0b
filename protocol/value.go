package protocol

import (
	"fmt"
)

// Kind identifies the wire type of a Value. The numeric value of each kind
// is the type tag byte that introduces it on the wire.
type Kind byte

const (
	KindSimpleString Kind = '+'
	KindError        Kind = '-'
	KindInteger      Kind = ':'
	KindBulkString   Kind = '$'
	KindArray        Kind = '*'
	KindBoolean      Kind = '#'
	KindDouble       Kind = ','
	KindNull         Kind = '_'
	KindMap          Kind = '%'
	KindSet          Kind = '~'
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple string"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk string"
	case KindArray:
		return "array"
	case KindBoolean:
		return "boolean"
	case KindDouble:
		return "double"
	case KindNull:
		return "null"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(k))
	}
}

// Value is a single decoded or to-be-encoded protocol value. The zero
// Value has no kind and cannot be encoded; build Values with the
// constructors below.
//
// Null bulk strings and null arrays are distinct from their empty
// counterparts and never compare equal to them.
type Value struct {
	kind    Kind
	null    bool
	text    string
	integer int64
	double  float64
	boolean bool
	bulk    []byte
	items   []Value
	entries []MapEntry
}

// MapEntry is one key/value pair of a map value. Entries keep their wire
// order so a decoded map re-encodes byte for byte.
type MapEntry struct {
	Key   Value
	Value Value
}

func SimpleString(text string) Value {
	return Value{kind: KindSimpleString, text: text}
}

func ErrorValue(message string) Value {
	return Value{kind: KindError, text: message}
}

func Integer(i int64) Value {
	return Value{kind: KindInteger, integer: i}
}

// BulkString returns a present bulk string. A nil slice is treated as an
// empty payload, use NullBulkString for the null form.
func BulkString(data []byte) Value {
	if data == nil {
		data = []byte{}
	}

	return Value{kind: KindBulkString, bulk: data}
}

func BulkStringFromString(text string) Value {
	return BulkString([]byte(text))
}

func NullBulkString() Value {
	return Value{kind: KindBulkString, null: true}
}

func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindArray, items: items}
}

func NullArray() Value {
	return Value{kind: KindArray, null: true}
}

func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

func Double(f float64) Value {
	return Value{kind: KindDouble, double: f}
}

func Null() Value {
	return Value{kind: KindNull, null: true}
}

func MapValue(entries ...MapEntry) Value {
	if entries == nil {
		entries = []MapEntry{}
	}

	return Value{kind: KindMap, entries: entries}
}

func SetValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindSet, items: items}
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null form of its kind. Only bulk
// strings, arrays and the dedicated null kind have one.
func (v Value) IsNull() bool {
	return v.null
}

// Text returns the payload of a simple string or error value.
func (v Value) Text() string {
	return v.text
}

func (v Value) Int() int64 {
	return v.integer
}

func (v Value) Float() float64 {
	return v.double
}

func (v Value) Bool() bool {
	return v.boolean
}

// Bytes returns the payload of a present bulk string, or nil for the null
// form.
func (v Value) Bytes() []byte {
	return v.bulk
}

// Items returns the elements of an array or set value.
func (v Value) Items() []Value {
	return v.items
}

// Entries returns the key/value pairs of a map value in wire order.
func (v Value) Entries() []MapEntry {
	return v.entries
}

// Len returns the element count of an aggregate, the payload length of a
// bulk string, and 0 for everything else including null forms.
func (v Value) Len() int {
	switch v.kind {
	case KindBulkString:
		return len(v.bulk)
	case KindArray, KindSet:
		return len(v.items)
	case KindMap:
		return len(v.entries)
	default:
		return 0
	}
}

func (v Value) String() string {
	if v.null {
		return fmt.Sprintf("%s(nil)", v.kind)
	}

	switch v.kind {
	case KindSimpleString, KindError:
		return fmt.Sprintf("%s(%q)", v.kind, v.text)
	case KindInteger:
		return fmt.Sprintf("%s(%d)", v.kind, v.integer)
	case KindBulkString:
		return fmt.Sprintf("%s(%q)", v.kind, v.bulk)
	case KindArray, KindSet:
		return fmt.Sprintf("%s(%d items)", v.kind, len(v.items))
	case KindMap:
		return fmt.Sprintf("%s(%d entries)", v.kind, len(v.entries))
	case KindBoolean:
		return fmt.Sprintf("%s(%t)", v.kind, v.boolean)
	case KindDouble:
		return fmt.Sprintf("%s(%s)", v.kind, formatDouble(v.double))
	default:
		return fmt.Sprintf("%s()", v.kind)
	}
}
