package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindred-ai/kindred/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Aggregate evaluation results across all profiles",
		Run:   runAnalytics,
	}
	RootCmd.AddCommand(cmd)
}

func runAnalytics(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	data, err := service.NewAdminService(s).Analytics(cmd.Context())
	if err != nil {
		exitErr("analytics", err)
	}

	b, _ := json.MarshalIndent(data, "", "  ")
	fmt.Println(string(b))
}
