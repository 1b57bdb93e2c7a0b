package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/luma/argot/inspect"
	"github.com/luma/argot/protocol"
)

var (
	// A JSON document to encode instead of the positional arguments
	encodeJSON string

	// Write raw wire bytes to stdout instead of the readable report
	encodeRaw bool
)

func init() {
	flags := EncodeCmd.PersistentFlags()

	flags.StringVar(&encodeJSON, "json", "", "JSON document to encode, - reads one from stdin")
	flags.BoolVar(&encodeRaw, "raw", false, "write raw wire bytes to stdout")
}

var EncodeCmd = &cobra.Command{
	Use:   "encode [text]...",
	Short: "Encode values into wire data",
	Long: `Encode values into wire data

Each positional argument becomes one simple string frame. The --json
flag instead builds a value of any kind from its document form, the
same form the decode command emits.

Usage
	argot encode OK
	argot encode --json '{"kind":"integer","value":42}'
	argot encode --raw PING | argot decode

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := encodeInputs(args)
		if err != nil {
			return err
		}

		if encodeRaw {
			return writeRaw(values)
		}

		for _, v := range values {
			data, err := protocol.Encode(v)
			if err != nil {
				return err
			}

			fmt.Printf("RESP: %q\n", data)
			fmt.Printf("Hex: %s\n", hex.EncodeToString(data))
		}

		return nil
	},
}

func encodeInputs(args []string) ([]protocol.Value, error) {
	if encodeJSON != "" {
		doc := []byte(encodeJSON)

		if encodeJSON == "-" {
			read, err := io.ReadAll(os.Stdin)
			if err != nil {
				return nil, err
			}

			doc = read
		}

		v, err := inspect.FromJSON(doc)
		if err != nil {
			return nil, err
		}

		return []protocol.Value{v}, nil
	}

	if len(args) == 0 {
		args = []string{"OK"}
	}

	values := make([]protocol.Value, 0, len(args))
	for _, arg := range args {
		values = append(values, protocol.SimpleString(arg))
	}

	return values, nil
}

func writeRaw(values []protocol.Value) (err error) {
	w := protocol.NewWriter(os.Stdout)

	for _, v := range values {
		if werr := w.WriteValue(v); werr != nil {
			err = multierr.Append(err, werr)
		}
	}

	return multierr.Append(err, w.Flush())
}
