package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/lorelime/eliza/db"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show conversation statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	if err := openHistory(); err != nil {
		exitErr("open history", err)
	}
	defer db.Close()

	stats, err := db.GetGlobalStats()
	if err != nil {
		exitErr("stats", err)
	}

	fmt.Printf("sessions: %s\n", humanize.Comma(int64(stats.SessionCount)))
	fmt.Printf("turns:    %s\n", humanize.Comma(int64(stats.TurnCount)))
	if !stats.LastSessionTime.IsZero() {
		fmt.Printf("last session: %s\n", humanize.Time(stats.LastSessionTime))
	}
}
