package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luma/argot/protocol"
)

var CommandCmd = &cobra.Command{
	Use:   "command NAME [arg]...",
	Short: "Encode a client command",
	Long: `Encode a client command

Builds the array-of-bulk-strings frame a server expects for the given
command, prints it next to its hex bytes and checks that it parses
back.

Usage
	argot command GET mykey
	argot command SET mykey myvalue

`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := protocol.EncodeCommand(args[0], args[1:]...)

		parsed, err := protocol.ParseCommandBytes(data)
		if err != nil {
			return err
		}

		fmt.Printf("Command: %s\n", parsed)
		fmt.Printf("RESP: %q\n", data)
		fmt.Printf("Hex: %s\n", hex.EncodeToString(data))

		return nil
	},
}
