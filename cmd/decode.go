package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/argot/inspect"
	"github.com/luma/argot/internal/env"
	"github.com/luma/argot/protocol"
)

var (
	// Hex encoded input, takes precedence over --in when set
	decodeHex string

	// The file to read wire data from, - means stdin
	decodeIn string

	// Emit JSON documents instead of the line rendering
	decodeJSON bool

	// The feed size used when pushing input into the decoder
	decodeChunk int

	// Limit overrides, zero falls back to the environment
	decodeMaxDepth    int
	decodeMaxBuffer   int
	decodeMaxBulk     int
	decodeMaxElements int
)

func init() {
	flags := DecodeCmd.PersistentFlags()

	flags.StringVar(&decodeHex, "hex", "", "hex encoded wire data to decode")
	flags.StringVarP(&decodeIn, "in", "i", "-", "file to read wire data from, - reads stdin")
	flags.BoolVar(&decodeJSON, "json", false, "print values as JSON documents")
	flags.IntVar(&decodeChunk, "chunk", 4096, "bytes to feed into the decoder per round")
	flags.IntVar(&decodeMaxDepth, "max-depth", 0, "override the nesting depth limit")
	flags.IntVar(&decodeMaxBuffer, "max-buffer", 0, "override the decoder buffer cap")
	flags.IntVar(&decodeMaxBulk, "max-bulk", 0, "override the bulk string length limit")
	flags.IntVar(&decodeMaxElements, "max-elements", 0, "override the aggregate element limit")
}

var DecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode wire data into readable values",
	Long: `Decode wire data into readable values

Reads protocol frames from a file, stdin or the --hex flag and prints
every complete value found in them. Input that ends in the middle of a
value makes the command fail.

Usage
	argot decode --hex 2b4f4b0d0a
	cat dump.bin | argot decode --json

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conf, err := env.LoadConfig(ctx)
		if err != nil {
			return err
		}

		log, err := env.MakeLogger(conf.Debug)
		if err != nil {
			return err
		}

		data, err := readDecodeInput()
		if err != nil {
			return err
		}

		log.Debug("Read input", zap.Int("bytes", len(data)))

		return decodeAll(data, decodeOptions(conf), log)
	},
}

func readDecodeInput() (data []byte, err error) {
	if decodeHex != "" {
		data, err = hex.DecodeString(strings.Map(dropSpace, decodeHex))
		if err != nil {
			return nil, fmt.Errorf("Flag --hex does not hold valid hex data: %w", err)
		}

		return data, nil
	}

	if decodeIn == "" || decodeIn == "-" {
		return io.ReadAll(os.Stdin)
	}

	f, err := os.Open(decodeIn)
	if err != nil {
		return nil, err
	}

	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return io.ReadAll(f)
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}

	return r
}

// decodeOptions merges the environment limits with the flag overrides.
// Flags are applied last so they win.
func decodeOptions(conf *env.Config) []protocol.DecoderOption {
	options := conf.DecoderOptions()

	if decodeMaxDepth > 0 {
		options = append(options, protocol.WithMaxDepth(decodeMaxDepth))
	}

	if decodeMaxBuffer > 0 {
		options = append(options, protocol.WithMaxBufferSize(decodeMaxBuffer))
	}

	if decodeMaxBulk > 0 {
		options = append(options, protocol.WithMaxBulkLength(decodeMaxBulk))
	}

	if decodeMaxElements > 0 {
		options = append(options, protocol.WithMaxElementCount(decodeMaxElements))
	}

	return options
}

func decodeAll(data []byte, options []protocol.DecoderOption, log *zap.Logger) error {
	dec := protocol.NewDecoder(options...)

	chunk := decodeChunk
	if chunk < 1 {
		chunk = len(data)
	}

	count := 0

	for offset := 0; offset < len(data); offset += chunk {
		end := offset + chunk
		if end > len(data) {
			end = len(data)
		}

		if err := dec.Feed(data[offset:end]); err != nil {
			return err
		}

		for {
			v, err := dec.Decode()
			if errors.Is(err, protocol.ErrIncomplete) {
				break
			}
			if err != nil {
				return err
			}

			dec.Consume()

			if err := printValue(v); err != nil {
				return err
			}

			count++
		}
	}

	if dec.Buffered() > 0 {
		return fmt.Errorf("Input ends with an incomplete value, %d bytes are left over: %w",
			dec.Buffered(), protocol.ErrIncomplete)
	}

	log.Debug("Decoded input", zap.Int("values", count))

	return nil
}

func printValue(v protocol.Value) error {
	if decodeJSON {
		doc, err := inspect.ToJSON(v)
		if err != nil {
			return err
		}

		fmt.Println(string(doc))

		return nil
	}

	fmt.Println(inspect.Render(v))

	return nil
}
