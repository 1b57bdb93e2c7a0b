package protocol

import (
	"bufio"
	"errors"
	"io"
)

const readChunkSize = 4096

// Reader decodes values from an io.Reader, buffering fragments until each
// value completes. It owns its Decoder; callers never touch Feed, Decode
// or Consume themselves.
type Reader struct {
	src   io.Reader
	dec   *Decoder
	chunk []byte
}

func NewReader(src io.Reader, options ...DecoderOption) *Reader {
	return &Reader{
		src:   src,
		dec:   NewDecoder(options...),
		chunk: make([]byte, readChunkSize),
	}
}

// ReadValue returns the next value on the stream. A stream that ends
// cleanly between values returns io.EOF, one that ends inside a value
// returns io.ErrUnexpectedEOF.
func (r *Reader) ReadValue() (Value, error) {
	for {
		value, err := r.dec.Decode()
		if err == nil {
			r.dec.Consume()
			return value, nil
		}
		if !errors.Is(err, ErrIncomplete) {
			return Value{}, err
		}

		n, rerr := r.src.Read(r.chunk)
		if n > 0 {
			if ferr := r.dec.Feed(r.chunk[:n]); ferr != nil {
				return Value{}, ferr
			}
		}

		if rerr != nil {
			if !errors.Is(rerr, io.EOF) {
				return Value{}, rerr
			}
			if n > 0 {
				// Decode whatever arrived with the EOF first.
				continue
			}
			if r.dec.Buffered() == 0 {
				return Value{}, io.EOF
			}
			return Value{}, io.ErrUnexpectedEOF
		}
	}
}

// ReadCommand reads the next value and unwraps it as a command.
func (r *Reader) ReadCommand() (Command, error) {
	value, err := r.ReadValue()
	if err != nil {
		return Command{}, err
	}

	return ParseCommand(value)
}

// Writer encodes values onto a buffered io.Writer. A value that fails to
// encode leaves the output untouched.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) WriteValue(v Value) error {
	out, err := AppendValue(w.scratch[:0], v)
	if err != nil {
		return err
	}
	w.scratch = out[:0]

	_, err = w.bw.Write(out)
	return err
}

func (w *Writer) WriteCommand(name string, args ...string) error {
	w.scratch = AppendCommand(w.scratch[:0], name, args...)

	_, err := w.bw.Write(w.scratch)
	return err
}

// Flush pushes any buffered bytes through to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
