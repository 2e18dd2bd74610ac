package main

import (
	"log/slog"
	"os"

	"github.com/wiztriage/wiztriage/internal/commands"
)

func main() {
	// Default logger until the CLI layer re-binds it with the chosen level.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	commands.Execute()
}
