package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luma/argot/internal/meta"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(meta.GetInfo())
	},
}
