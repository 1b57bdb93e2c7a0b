package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luma/argot/cmd/gen"
)

var RootCmd = &cobra.Command{
	Use:   "argot",
	Short: "Inspect, decode and build wire protocol messages",
	Long: `Inspect, decode and build wire protocol messages

Usage
	argot decode --hex 2b4f4b0d0a
	argot command GET mykey

`,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(DecodeCmd)
	RootCmd.AddCommand(EncodeCmd)
	RootCmd.AddCommand(CommandCmd)
	RootCmd.AddCommand(BuilderCmd)
	RootCmd.AddCommand(VersionCmd)
	RootCmd.AddCommand(gen.RootCmd)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
