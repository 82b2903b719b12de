package cli

import (
	"fmt"

	"github.com/lorelime/eliza/db"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Print a recorded conversation transcript",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	if err := openHistory(); err != nil {
		exitErr("open history", err)
	}
	defer db.Close()

	turns, err := db.GetTranscript(args[0])
	if err != nil {
		exitErr("transcript", err)
	}

	for _, t := range turns {
		fmt.Printf("you:   %s\n", t.Input)
		fmt.Printf("eliza: %s\n", t.Reply)
	}
}
