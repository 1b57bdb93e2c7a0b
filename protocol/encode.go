package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var crlf = []byte("\r\n")

// Encode serialises v into its wire form.
func Encode(v Value) ([]byte, error) {
	return AppendValue(nil, v)
}

// AppendValue appends the wire form of v to dst and returns the extended
// slice. When encoding fails, dst is returned unchanged and nothing has
// been written.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	out, err := appendValue(dst, v)
	if err != nil {
		return dst, err
	}

	return out, nil
}

func appendValue(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindSimpleString, KindError:
		if strings.ContainsAny(v.text, "\r\n") {
			return nil, fmt.Errorf("Failed to encode %s %q: %w", v.kind, v.text, ErrUnsafeText)
		}

		dst = append(dst, byte(v.kind))
		dst = append(dst, v.text...)
		return append(dst, crlf...), nil

	case KindInteger:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.integer, 10)
		return append(dst, crlf...), nil

	case KindBulkString:
		if v.null {
			return append(dst, "$-1\r\n"...), nil
		}

		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.bulk)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.bulk...)
		return append(dst, crlf...), nil

	case KindArray:
		if v.null {
			return append(dst, "*-1\r\n"...), nil
		}

		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.items)), 10)
		dst = append(dst, crlf...)
		return appendItems(dst, v.items)

	case KindSet:
		dst = append(dst, '~')
		dst = strconv.AppendInt(dst, int64(len(v.items)), 10)
		dst = append(dst, crlf...)
		return appendItems(dst, v.items)

	case KindMap:
		dst = append(dst, '%')
		dst = strconv.AppendInt(dst, int64(len(v.entries)), 10)
		dst = append(dst, crlf...)

		var err error
		for _, entry := range v.entries {
			if dst, err = appendValue(dst, entry.Key); err != nil {
				return nil, err
			}
			if dst, err = appendValue(dst, entry.Value); err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindBoolean:
		if v.boolean {
			return append(dst, "#t\r\n"...), nil
		}
		return append(dst, "#f\r\n"...), nil

	case KindDouble:
		dst = append(dst, ',')
		dst = append(dst, formatDouble(v.double)...)
		return append(dst, crlf...), nil

	case KindNull:
		return append(dst, "_\r\n"...), nil

	default:
		return nil, fmt.Errorf("Failed to encode kind 0x%02x: %w", byte(v.kind), ErrUnknownKind)
	}
}

func appendItems(dst []byte, items []Value) ([]byte, error) {
	var err error

	for _, item := range items {
		if dst, err = appendValue(dst, item); err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// EncodeCommand frames a command as an array of bulk strings, the name
// first and one bulk string per argument. Bulk strings are binary safe so
// this cannot fail.
func EncodeCommand(name string, args ...string) []byte {
	return AppendCommand(nil, name, args...)
}

// AppendCommand appends the wire form of a command to dst.
func AppendCommand(dst []byte, name string, args ...string) []byte {
	dst = append(dst, '*')
	dst = strconv.AppendInt(dst, int64(len(args)+1), 10)
	dst = append(dst, crlf...)

	dst = appendBulkText(dst, name)
	for _, arg := range args {
		dst = appendBulkText(dst, arg)
	}

	return dst
}

func appendBulkText(dst []byte, text string) []byte {
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(text)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, text...)
	return append(dst, crlf...)
}

// formatDouble renders the shortest decimal form that round-trips back to
// the same float64. Infinities and NaN use their dedicated spellings.
func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
