package protocol

// This package implements parsing and serialising for the RESP wire
// format (the Redis serialisation protocol) that Argot speaks.
//
// The format aims to be
//
// - easy to implement
// - efficient to parse
// - human readable where the payloads allow it
//
// - `Value`   - One wire value of any kind. Closed set, built with the
//               constructors in value.go.
// - `Encoder` - Encode/AppendValue turn a Value into its exact wire
//               bytes. Stateless.
// - `Decoder` - Accumulates fragments via Feed and decodes complete
//               values off the front of its buffer. Stateful, one per
//               stream.
// - `Command` - The request convention layered on top: an array of bulk
//               strings, name first.
//
// === General syntax
//
// Every value starts with a type tag byte and every header or scalar line
// ends in `\r\n`. Bulk strings carry a byte length so their payloads are
// binary safe; simple strings and errors are not and must never contain
// CR or LF.
//
//   ```
//     +OK\r\n                      simple string
//     -ERR no such key\r\n         error
//     :42\r\n                      integer
//     $5\r\nhello\r\n              bulk string
//     $-1\r\n                      null bulk string
//     *2\r\n+a\r\n+b\r\n           array of two values
//     *-1\r\n                      null array
//     #t\r\n                       boolean
//     ,3.25\r\n                    double
//     _\r\n                        null
//     %1\r\n+k\r\n+v\r\n           map of one entry
//     ~2\r\n:1\r\n:2\r\n           set of two values
//   ```
//
// === Commands
//
// A request is an array of bulk strings, the command name first:
//
//   ```
//     *2\r\n$3\r\nGET\r\n$5\r\nmykey\r\n
//   ```
//
// There is no dedicated command wire type. ParseCommand enforces the
// convention and upper-cases the name; arguments stay raw bytes.
//
// === Incremental decoding
//
// Bytes arrive from a transport in arbitrary fragments, so the Decoder
// never assumes a value is whole. The caller loop is
//
//   ```
//     dec.Feed(chunk)
//     for {
//       v, err := dec.Decode()
//       if errors.Is(err, protocol.ErrIncomplete) {
//         break // wait for more bytes, nothing was consumed
//       }
//       if err != nil {
//         // malformed, the stream is unusable from here
//       }
//       dec.Consume()
//       // dispatch v
//     }
//   ```
//
// Decode never commits a partial value: on ErrIncomplete or a malformed
// error the read position is exactly where it was before the call, and
// retrying after more Feed calls is always safe. Consume is the only
// operation that discards buffered bytes.
