package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lorelime/eliza/cli"
)

func main() {
	// A missing .env is fine; env vars may come from anywhere.
	godotenv.Load()

	if os.Getenv("ELIZA_LOG") == "debug" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	cli.Execute()
}
