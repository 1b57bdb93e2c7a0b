package protocol

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	// DefaultMaxDepth bounds how deeply aggregate values may nest.
	DefaultMaxDepth = 32

	// DefaultMaxBulkLength caps a single bulk string payload at 512MB.
	DefaultMaxBulkLength = 512 * 1024 * 1024

	// DefaultMaxElementCount caps the declared size of a single array, map
	// or set.
	DefaultMaxElementCount = 1024 * 1024
)

// A DecoderOption adjusts the limits of a Decoder.
type DecoderOption func(*Decoder)

// WithMaxDepth bounds aggregate nesting. Values nested deeper than depth
// levels decode as malformed. Depths below one leave the default in place.
func WithMaxDepth(depth int) DecoderOption {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// WithMaxBufferSize caps the bytes the decoder will hold, Feed fails once
// the cap would be exceeded. Sizes below one leave the buffer unbounded.
func WithMaxBufferSize(size int) DecoderOption {
	return func(d *Decoder) {
		if size > 0 {
			d.maxBuffer = size
		}
	}
}

// WithMaxBulkLength caps the declared length of a single bulk string.
func WithMaxBulkLength(length int) DecoderOption {
	return func(d *Decoder) {
		if length > 0 {
			d.maxBulkLen = length
		}
	}
}

// WithMaxElementCount caps the declared element count of a single array,
// map or set.
func WithMaxElementCount(count int) DecoderOption {
	return func(d *Decoder) {
		if count > 0 {
			d.maxElements = count
		}
	}
}

// A Decoder incrementally decodes values from a stream whose bytes arrive
// in arbitrary fragments.
//
// Feed appends newly received bytes. Decode attempts one value from the
// front of the undecoded bytes: it returns the value, or ErrIncomplete
// when more bytes are needed, or an error wrapping ErrMalformed when the
// bytes present violate the grammar. On anything but success the read
// position is restored to where it was, so decoding simply restarts after
// the next Feed. Consume releases the bytes of the values decoded so far
// and must be called once a value has been accepted.
//
// A Decoder belongs to one stream and is not safe for concurrent use.
type Decoder struct {
	buf []byte
	pos int

	maxDepth    int
	maxBuffer   int
	maxBulkLen  int
	maxElements int
}

func NewDecoder(options ...DecoderOption) *Decoder {
	d := &Decoder{
		maxDepth:    DefaultMaxDepth,
		maxBulkLen:  DefaultMaxBulkLength,
		maxElements: DefaultMaxElementCount,
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// Feed appends data to the decode buffer.
func (d *Decoder) Feed(data []byte) error {
	if d.maxBuffer > 0 && len(d.buf)+len(data) > d.maxBuffer {
		return fmt.Errorf("Buffer of %d bytes cannot take %d more: %w",
			len(d.buf), len(data), ErrBufferLimit)
	}

	d.buf = append(d.buf, data...)
	return nil
}

// Decode attempts to decode one value starting at the current read
// position. Decoded payloads are copied out of the buffer, so they stay
// valid after Consume.
func (d *Decoder) Decode() (Value, error) {
	mark := d.pos

	value, err := d.decodeValue(0)
	if err != nil {
		d.pos = mark
		return Value{}, err
	}

	return value, nil
}

// Consume discards the buffered bytes of every value decoded since the
// last Consume. It is the only way buffered bytes are released.
func (d *Decoder) Consume() {
	if d.pos == 0 {
		return
	}

	n := copy(d.buf, d.buf[d.pos:])
	d.buf = d.buf[:n]
	d.pos = 0
}

// Buffered returns the number of bytes currently held, including any that
// have been decoded but not yet released by Consume.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Reset drops all buffered bytes and the read position so the decoder can
// be reused for a fresh stream.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.pos = 0
}

func (d *Decoder) decodeValue(depth int) (Value, error) {
	if d.pos >= len(d.buf) {
		return Value{}, ErrIncomplete
	}

	switch tag := d.buf[d.pos]; Kind(tag) {
	case KindSimpleString:
		return d.decodeSimpleText(KindSimpleString)
	case KindError:
		return d.decodeSimpleText(KindError)
	case KindInteger:
		return d.decodeInteger()
	case KindBulkString:
		return d.decodeBulkString()
	case KindArray:
		return d.decodeArray(depth)
	case KindBoolean:
		return d.decodeBoolean()
	case KindDouble:
		return d.decodeDouble()
	case KindNull:
		return d.decodeNull()
	case KindMap:
		return d.decodeMap(depth)
	case KindSet:
		return d.decodeSet(depth)
	default:
		return Value{}, fmt.Errorf("Unknown type byte %q: %w", tag, ErrMalformed)
	}
}

// readLine returns the bytes between the current position and the next
// CRLF, advancing past the terminator. The returned slice aliases the
// buffer and must be copied before it escapes.
func (d *Decoder) readLine() ([]byte, error) {
	end := bytes.Index(d.buf[d.pos:], crlf)
	if end < 0 {
		return nil, ErrIncomplete
	}

	line := d.buf[d.pos : d.pos+end]
	d.pos += end + 2
	return line, nil
}

func (d *Decoder) readLength(what string) (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s %q: %w", what, line, ErrMalformed)
	}

	return n, nil
}

func (d *Decoder) decodeSimpleText(kind Kind) (Value, error) {
	d.pos++

	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	// Simple strings and errors are not binary safe, a stray CR or LF
	// before the terminator is a framing violation.
	if bytes.ContainsAny(line, "\r\n") {
		return Value{}, fmt.Errorf("Payload of a %s contains a bare CR or LF: %w", kind, ErrMalformed)
	}

	return Value{kind: kind, text: string(line)}, nil
}

func (d *Decoder) decodeInteger() (Value, error) {
	d.pos++

	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	i, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("Invalid integer %q: %w", line, ErrMalformed)
	}

	return Integer(i), nil
}

func (d *Decoder) decodeBulkString() (Value, error) {
	d.pos++

	length, err := d.readLength("bulk string length")
	if err != nil {
		return Value{}, err
	}

	if length == -1 {
		return NullBulkString(), nil
	}
	if length < 0 {
		return Value{}, fmt.Errorf("Negative bulk string length %d: %w", length, ErrMalformed)
	}
	if length > int64(d.maxBulkLen) {
		return Value{}, fmt.Errorf("Bulk string length %d exceeds the limit of %d: %w",
			length, d.maxBulkLen, ErrMalformed)
	}

	end := d.pos + int(length)
	if end+2 > len(d.buf) {
		return Value{}, ErrIncomplete
	}
	if d.buf[end] != '\r' || d.buf[end+1] != '\n' {
		return Value{}, fmt.Errorf("Bulk string of %d bytes is not terminated by CRLF: %w",
			length, ErrMalformed)
	}

	data := make([]byte, length)
	copy(data, d.buf[d.pos:end])
	d.pos = end + 2

	return BulkString(data), nil
}

func (d *Decoder) decodeArray(depth int) (Value, error) {
	if depth >= d.maxDepth {
		return Value{}, fmt.Errorf("Nesting exceeds the maximum depth of %d: %w", d.maxDepth, ErrMalformed)
	}

	d.pos++

	count, err := d.readLength("array count")
	if err != nil {
		return Value{}, err
	}

	if count == -1 {
		return NullArray(), nil
	}
	if count < 0 {
		return Value{}, fmt.Errorf("Negative array count %d: %w", count, ErrMalformed)
	}
	if count > int64(d.maxElements) {
		return Value{}, fmt.Errorf("Array of %d elements exceeds the limit of %d: %w",
			count, d.maxElements, ErrMalformed)
	}

	items := make([]Value, 0, count)
	for i := int64(0); i < count; i++ {
		item, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		items = append(items, item)
	}

	return Array(items...), nil
}

func (d *Decoder) decodeSet(depth int) (Value, error) {
	if depth >= d.maxDepth {
		return Value{}, fmt.Errorf("Nesting exceeds the maximum depth of %d: %w", d.maxDepth, ErrMalformed)
	}

	d.pos++

	count, err := d.readLength("set count")
	if err != nil {
		return Value{}, err
	}

	// Sets have no null form, any negative count is a grammar violation.
	if count < 0 {
		return Value{}, fmt.Errorf("Negative set count %d: %w", count, ErrMalformed)
	}
	if count > int64(d.maxElements) {
		return Value{}, fmt.Errorf("Set of %d elements exceeds the limit of %d: %w",
			count, d.maxElements, ErrMalformed)
	}

	items := make([]Value, 0, count)
	for i := int64(0); i < count; i++ {
		item, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		items = append(items, item)
	}

	return SetValue(items...), nil
}

func (d *Decoder) decodeMap(depth int) (Value, error) {
	if depth >= d.maxDepth {
		return Value{}, fmt.Errorf("Nesting exceeds the maximum depth of %d: %w", d.maxDepth, ErrMalformed)
	}

	d.pos++

	count, err := d.readLength("map count")
	if err != nil {
		return Value{}, err
	}

	if count < 0 {
		return Value{}, fmt.Errorf("Negative map count %d: %w", count, ErrMalformed)
	}
	if count > int64(d.maxElements) {
		return Value{}, fmt.Errorf("Map of %d entries exceeds the limit of %d: %w",
			count, d.maxElements, ErrMalformed)
	}

	entries := make([]MapEntry, 0, count)
	for i := int64(0); i < count; i++ {
		key, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		value, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		entries = append(entries, MapEntry{Key: key, Value: value})
	}

	return MapValue(entries...), nil
}

func (d *Decoder) decodeBoolean() (Value, error) {
	d.pos++

	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	switch string(line) {
	case "t":
		return Boolean(true), nil
	case "f":
		return Boolean(false), nil
	default:
		return Value{}, fmt.Errorf("Invalid boolean %q: %w", line, ErrMalformed)
	}
}

func (d *Decoder) decodeDouble() (Value, error) {
	d.pos++

	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	f, err := strconv.ParseFloat(string(line), 64)
	if err != nil {
		return Value{}, fmt.Errorf("Invalid double %q: %w", line, ErrMalformed)
	}

	return Double(f), nil
}

func (d *Decoder) decodeNull() (Value, error) {
	d.pos++

	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}

	if len(line) != 0 {
		return Value{}, fmt.Errorf("Null carries an unexpected payload %q: %w", line, ErrMalformed)
	}

	return Null(), nil
}
