package inspect

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/luma/argot/protocol"
)

// ErrInvalidDocument is wrapped by FromJSON whenever the input is not a
// document that ToJSON could have produced.
var ErrInvalidDocument = errors.New("Document does not describe a protocol value")

// ToJSON describes a value as a JSON document carrying a "kind"
// discriminator next to the payload. Binary bulk payloads travel base64
// encoded and are flagged with an "encoding" field, non finite doubles
// become the strings "inf", "-inf" and "nan". Null forms keep a JSON
// null payload so they stay distinct from their empty counterparts.
func ToJSON(v protocol.Value) ([]byte, error) {
	label := kindLabel(v.Kind())
	if label == "" {
		return nil, fmt.Errorf("Value of kind %s has no document form: %w", v.Kind(), protocol.ErrUnknownKind)
	}

	doc, err := sjson.SetBytes([]byte(`{}`), "kind", label)
	if err != nil {
		return nil, err
	}

	switch v.Kind() {
	case protocol.KindSimpleString, protocol.KindError:
		return sjson.SetBytes(doc, "value", v.Text())

	case protocol.KindInteger:
		return sjson.SetBytes(doc, "value", v.Int())

	case protocol.KindBulkString:
		return describeBulk(doc, v)

	case protocol.KindBoolean:
		return sjson.SetBytes(doc, "value", v.Bool())

	case protocol.KindDouble:
		if math.IsInf(v.Float(), 0) || math.IsNaN(v.Float()) {
			return sjson.SetBytes(doc, "value", formatDouble(v.Float()))
		}

		return sjson.SetBytes(doc, "value", v.Float())

	case protocol.KindNull:
		return doc, nil

	case protocol.KindArray:
		if v.IsNull() {
			return sjson.SetRawBytes(doc, "value", []byte("null"))
		}

		return describeItems(doc, v.Items())

	case protocol.KindSet:
		return describeItems(doc, v.Items())

	default:
		return describeEntries(doc, v.Entries())
	}
}

func describeBulk(doc []byte, v protocol.Value) ([]byte, error) {
	if v.IsNull() {
		return sjson.SetRawBytes(doc, "value", []byte("null"))
	}

	payload := v.Bytes()
	if utf8.Valid(payload) {
		return sjson.SetBytes(doc, "value", string(payload))
	}

	doc, err := sjson.SetBytes(doc, "value", base64.StdEncoding.EncodeToString(payload))
	if err != nil {
		return nil, err
	}

	return sjson.SetBytes(doc, "encoding", "base64")
}

func describeItems(doc []byte, items []protocol.Value) ([]byte, error) {
	doc, err := sjson.SetRawBytes(doc, "value", []byte("[]"))
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		child, err := ToJSON(item)
		if err != nil {
			return nil, err
		}

		doc, err = sjson.SetRawBytes(doc, "value.-1", child)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func describeEntries(doc []byte, entries []protocol.MapEntry) ([]byte, error) {
	doc, err := sjson.SetRawBytes(doc, "value", []byte("[]"))
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		key, err := ToJSON(entry.Key)
		if err != nil {
			return nil, err
		}

		value, err := ToJSON(entry.Value)
		if err != nil {
			return nil, err
		}

		pair, err := sjson.SetRawBytes([]byte(`{}`), "key", key)
		if err != nil {
			return nil, err
		}

		pair, err = sjson.SetRawBytes(pair, "value", value)
		if err != nil {
			return nil, err
		}

		doc, err = sjson.SetRawBytes(doc, "value.-1", pair)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// FromJSON rebuilds a value from the document form produced by ToJSON.
func FromJSON(data []byte) (protocol.Value, error) {
	if !gjson.ValidBytes(data) {
		return protocol.Value{}, fmt.Errorf("Input is not valid JSON: %w", ErrInvalidDocument)
	}

	return valueFromResult(gjson.ParseBytes(data))
}

func valueFromResult(r gjson.Result) (protocol.Value, error) {
	if !r.IsObject() {
		return protocol.Value{}, fmt.Errorf("Expected a document object, got %q: %w", r.Raw, ErrInvalidDocument)
	}

	kind := r.Get("kind")
	if !kind.Exists() {
		return protocol.Value{}, fmt.Errorf("Document has no kind: %w", ErrInvalidDocument)
	}

	value := r.Get("value")

	switch kind.String() {
	case "string":
		return protocol.SimpleString(value.String()), nil

	case "error":
		return protocol.ErrorValue(value.String()), nil

	case "integer":
		if value.Type != gjson.Number {
			return protocol.Value{}, fmt.Errorf("Integer value must be a number, got %q: %w", value.Raw, ErrInvalidDocument)
		}

		return protocol.Integer(value.Int()), nil

	case "bulk":
		return bulkFromResult(r, value)

	case "boolean":
		if value.Type != gjson.True && value.Type != gjson.False {
			return protocol.Value{}, fmt.Errorf("Boolean value must be true or false, got %q: %w", value.Raw, ErrInvalidDocument)
		}

		return protocol.Boolean(value.Bool()), nil

	case "double":
		return doubleFromResult(value)

	case "null":
		return protocol.Null(), nil

	case "array":
		if value.Type == gjson.Null {
			return protocol.NullArray(), nil
		}

		items, err := itemsFromResult(value)
		if err != nil {
			return protocol.Value{}, err
		}

		return protocol.Array(items...), nil

	case "set":
		items, err := itemsFromResult(value)
		if err != nil {
			return protocol.Value{}, err
		}

		return protocol.SetValue(items...), nil

	case "map":
		return mapFromResult(value)

	default:
		return protocol.Value{}, fmt.Errorf("Unknown kind %q: %w", kind.String(), ErrInvalidDocument)
	}
}

func bulkFromResult(r gjson.Result, value gjson.Result) (protocol.Value, error) {
	if value.Type == gjson.Null {
		return protocol.NullBulkString(), nil
	}

	if value.Type != gjson.String {
		return protocol.Value{}, fmt.Errorf("Bulk value must be a string or null, got %q: %w", value.Raw, ErrInvalidDocument)
	}

	if encoding := r.Get("encoding"); encoding.Exists() {
		if encoding.String() != "base64" {
			return protocol.Value{}, fmt.Errorf("Unknown bulk encoding %q: %w", encoding.String(), ErrInvalidDocument)
		}

		payload, err := base64.StdEncoding.DecodeString(value.String())
		if err != nil {
			return protocol.Value{}, fmt.Errorf("Bulk payload is not valid base64: %w", ErrInvalidDocument)
		}

		return protocol.BulkString(payload), nil
	}

	return protocol.BulkStringFromString(value.String()), nil
}

func doubleFromResult(value gjson.Result) (protocol.Value, error) {
	switch value.Type {
	case gjson.Number:
		return protocol.Double(value.Float()), nil

	case gjson.String:
		switch value.String() {
		case "inf":
			return protocol.Double(math.Inf(1)), nil
		case "-inf":
			return protocol.Double(math.Inf(-1)), nil
		case "nan":
			return protocol.Double(math.NaN()), nil
		}
	}

	return protocol.Value{}, fmt.Errorf(`Double value must be a number, "inf", "-inf" or "nan", got %q: %w`, value.Raw, ErrInvalidDocument)
}

func itemsFromResult(value gjson.Result) ([]protocol.Value, error) {
	if !value.IsArray() {
		return nil, fmt.Errorf("Aggregate value must be an array, got %q: %w", value.Raw, ErrInvalidDocument)
	}

	results := value.Array()
	items := make([]protocol.Value, 0, len(results))

	for _, result := range results {
		item, err := valueFromResult(result)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func mapFromResult(value gjson.Result) (protocol.Value, error) {
	if !value.IsArray() {
		return protocol.Value{}, fmt.Errorf("Map value must be an array of key/value pairs, got %q: %w", value.Raw, ErrInvalidDocument)
	}

	results := value.Array()
	entries := make([]protocol.MapEntry, 0, len(results))

	for _, result := range results {
		key, err := valueFromResult(result.Get("key"))
		if err != nil {
			return protocol.Value{}, err
		}

		val, err := valueFromResult(result.Get("value"))
		if err != nil {
			return protocol.Value{}, err
		}

		entries = append(entries, protocol.MapEntry{Key: key, Value: val})
	}

	return protocol.MapValue(entries...), nil
}

func kindLabel(k protocol.Kind) string {
	switch k {
	case protocol.KindSimpleString:
		return "string"
	case protocol.KindError:
		return "error"
	case protocol.KindInteger:
		return "integer"
	case protocol.KindBulkString:
		return "bulk"
	case protocol.KindArray:
		return "array"
	case protocol.KindBoolean:
		return "boolean"
	case protocol.KindDouble:
		return "double"
	case protocol.KindNull:
		return "null"
	case protocol.KindMap:
		return "map"
	case protocol.KindSet:
		return "set"
	default:
		return ""
	}
}
