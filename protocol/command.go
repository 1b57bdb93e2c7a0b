package protocol

import (
	"fmt"
	"strings"
)

// Command is a client instruction framed as an array of bulk strings: the
// upper-cased name first, then the raw argument bytes in order.
type Command struct {
	Name string
	Args [][]byte
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		parts = append(parts, string(arg))
	}

	return strings.Join(parts, " ")
}

// ParseCommand unwraps a decoded value into a Command. The value must be a
// non-empty array whose elements are all present bulk strings. Arguments
// are returned verbatim, they are binary safe and never re-encoded.
func ParseCommand(v Value) (Command, error) {
	if v.kind != KindArray {
		return Command{}, fmt.Errorf("Command must be an array of bulk strings, got %s: %w", v.kind, ErrMalformed)
	}
	if v.null {
		return Command{}, fmt.Errorf("Command must not be a null array: %w", ErrMalformed)
	}
	if len(v.items) == 0 {
		return Command{}, fmt.Errorf("Command must not be an empty array: %w", ErrMalformed)
	}

	for i, item := range v.items {
		if item.kind != KindBulkString {
			return Command{}, fmt.Errorf("Command element %d must be a bulk string, got %s: %w", i, item.kind, ErrMalformed)
		}
		if item.null {
			return Command{}, fmt.Errorf("Command element %d must not be a null bulk string: %w", i, ErrMalformed)
		}
	}

	args := make([][]byte, 0, len(v.items)-1)
	for _, item := range v.items[1:] {
		args = append(args, item.bulk)
	}

	return Command{
		Name: strings.ToUpper(string(v.items[0].bulk)),
		Args: args,
	}, nil
}

// ParseCommandBytes decodes data as one complete command. It returns
// ErrIncomplete when data stops short of a full value. Trailing bytes
// after the command are ignored.
func ParseCommandBytes(data []byte) (Command, error) {
	d := NewDecoder()
	if err := d.Feed(data); err != nil {
		return Command{}, err
	}

	value, err := d.Decode()
	if err != nil {
		return Command{}, err
	}

	return ParseCommand(value)
}
