package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/aklinde/tick/internal/cli"
	"github.com/aklinde/tick/internal/config"
	"github.com/aklinde/tick/internal/logging"
	"github.com/aklinde/tick/internal/store"
	"github.com/aklinde/tick/internal/store/localstore"
	"github.com/aklinde/tick/internal/ui"
)

func main() {
	// A .env in the working directory may carry TICK_* overrides; a
	// missing file is fine.
	_ = godotenv.Load()

	// Root flags apply to every subcommand; the rest of the args go to
	// the CLI runner.
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "tick:", err)
		os.Exit(2)
	}

	ui.SetTheme(cfg.Theme)

	logger := logging.New(os.Stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Prefix:     "tick",
	})

	kv, err := localstore.Open(cfg.DataDir, localstore.WithQuota(cfg.QuotaBytes))
	if err != nil {
		logger.Error("open data dir", "dir", cfg.DataDir, "err", err)
		os.Exit(1)
	}
	logger.Debug("storage ready", "dir", kv.Dir(), "quota", kv.Quota())
	st := store.Open(kv, storeLogger(logger, args))

	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Store: st,
		Group: cfg.Group,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

// storeLogger picks the logger the store writes through. The ui
// subcommand gets a discard logger, since the interactive page owns
// the terminal and its error line already shows storage failures.
// Startup errors before that point still reach stderr.
func storeLogger(base *log.Logger, args []string) *log.Logger {
	if len(args) > 0 && args[0] == "ui" {
		return logging.Discard()
	}
	return base
}
