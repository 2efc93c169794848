package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindred-ai/kindred/internal/buildconfig"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kindredctl %s (%s)\n", buildconfig.Version(), buildconfig.Commit())
		},
	}
	RootCmd.AddCommand(cmd)
}
