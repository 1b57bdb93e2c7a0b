package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luma/argot/protocol"
)

var BuilderCmd = &cobra.Command{
	Use:   "builder",
	Short: "Show the wire frames of some common commands",
	Long: `Show the wire frames of some common commands

Prints a ready made set of command frames, handy for eyeballing the
encoding or seeding other tools.

Usage
	argot builder

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		examples := [][]string{
			{"GET", "mykey"},
			{"SET", "mykey", "myvalue", "EX", "60"},
			{"PING"},
			{"LPUSH", "mylist", "a", "b", "c"},
			{"HSET", "myhash", "field1", "value1"},
		}

		for _, example := range examples {
			data := protocol.EncodeCommand(example[0], example[1:]...)

			fmt.Printf("\n%s:\n", example[0])
			fmt.Printf("  RESP: %q\n", data)
			fmt.Printf("  Hex: %s\n", hex.EncodeToString(data))
		}

		return nil
	},
}
