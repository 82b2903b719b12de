// Package cli implements the eliza command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lorelime/eliza/db"
	"github.com/lorelime/eliza/script"
	"github.com/spf13/cobra"
)

var (
	scriptPath string
	dbPath     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "eliza",
	Short: "A keyword pattern matching chatbot",
	Long:  "An implementation of the classic ELIZA chatbot: ranked keywords, decomposition and reassembly rules, synonym redirection and short-term memory, driven by a JSON script.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&scriptPath, "script", "s", "", "Script path (default: $ELIZA_SCRIPT or the built-in doctor script)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "History database path (default: $ELIZA_DB or ~/.eliza/history.db)")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScript() (*script.Script, error) {
	path := scriptPath
	if path == "" {
		path = os.Getenv("ELIZA_SCRIPT")
	}
	if path == "" {
		return script.Default()
	}
	return script.Load(path)
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("ELIZA_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".eliza", "history.db")
}

func openHistory() error {
	path := getDBPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return db.InitDB(path)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
