package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect session profiles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all profiles",
		Run:   runProfilesList,
	}
	listCmd.Flags().Bool("sessions-only", false, "Only output session IDs")

	getCmd := &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		Run:   runProfilesGet,
	}

	clearCmd := &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Clear a profile's conversation history",
		Args:  cobra.ExactArgs(1),
		Run:   runProfilesClear,
	}

	profilesCmd.AddCommand(listCmd, getCmd, clearCmd)
	RootCmd.AddCommand(profilesCmd)
}

func runProfilesList(cmd *cobra.Command, args []string) {
	sessionsOnly, _ := cmd.Flags().GetBool("sessions-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	profiles, err := s.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	if sessionsOnly {
		for _, p := range profiles {
			fmt.Println(p.SessionID)
		}
		return
	}

	b, _ := json.MarshalIndent(profiles, "", "  ")
	fmt.Println(string(b))
}

func runProfilesGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	profile, err := s.GetBySessionID(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}

	b, _ := json.MarshalIndent(profile, "", "  ")
	fmt.Println(string(b))
}

func runProfilesClear(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearHistory(cmd.Context(), args[0]); err != nil {
		exitErr("clear", err)
	}
	fmt.Println("cleared")
}
