// Package cli implements the kindredctl operator commands. They work directly
// against the local SQLite database, bypassing the HTTP admin surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kindred-ai/kindred/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "kindredctl",
	Short: "Operator tooling for the compatibility chat service",
	Long:  "Inspect and maintain session profiles stored in the local SQLite database.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SQLITE_PATH or data/kindred.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("SQLITE_PATH"); env != "" {
		return env
	}
	return "data/kindred.db"
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
