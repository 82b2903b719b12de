package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lorelime/eliza/db"
	"github.com/lorelime/eliza/engine"
	"github.com/spf13/cobra"
)

var (
	chatSeed   int64
	chatMemory int
	noHistory  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Run:   runChat,
	}
	cmd.Flags().Int64Var(&chatSeed, "seed", 0, "Seed for reassembly rotation (0 = deterministic start)")
	cmd.Flags().IntVar(&chatMemory, "memory", 0, "Memory queue capacity (0 = script default)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the transcript")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	s, err := loadScript()
	if err != nil {
		exitErr("load script", err)
	}

	opts := engine.Options{MemoryCapacity: chatMemory}
	if chatSeed != 0 {
		opts.Rand = rand.New(rand.NewSource(chatSeed))
	}
	session := engine.NewSession(s, opts)

	sessionID := uuid.NewString()
	recording := !noHistory
	if recording {
		if err := openHistory(); err != nil {
			slog.Warn("history disabled", slog.Any("err", err))
			recording = false
		} else {
			defer db.Close()
			if err := db.BeginSession(sessionID, s.Name); err != nil {
				slog.Warn("history disabled", slog.Any("err", err))
				recording = false
			}
		}
	}

	fmt.Println(s.Greeting)
	scanner := bufio.NewScanner(os.Stdin)
	var turns uint
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if strings.TrimSpace(input) == "" {
			continue
		}

		reply, done := session.Respond(input)
		fmt.Println(reply)
		turns++
		if recording {
			db.RecordTurn(sessionID, int(turns), input, reply)
		}
		if done {
			break
		}
	}

	if recording {
		if err := db.BumpStats(turns); err != nil {
			slog.Error("failed to update stats", slog.Any("err", err))
		}
		slog.Info("session recorded",
			slog.String("session_id", sessionID),
			slog.Uint64("turns", uint64(turns)),
		)
	}
}
