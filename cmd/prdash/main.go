package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/prdash/internal/aggregate"
	"github.com/shhac/prdash/internal/config"
	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/logging"
	"github.com/shhac/prdash/internal/store"
	"github.com/shhac/prdash/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Printf("prdash %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Org == "" || len(cfg.Repos) == 0 {
		fmt.Fprintf(os.Stderr, "No repositories configured. Set \"org\" and \"repos\" in %s/config.json\n", config.DefaultConfigDir())
		os.Exit(1)
	}

	token := config.Token()
	if token == "" {
		fmt.Fprintln(os.Stderr, "GITHUB_TOKEN is not set. Export a personal access token with repo read access.")
		os.Exit(1)
	}

	log, err := logging.Setup(config.LogPath(), cfg.LogLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	client, err := github.NewClient(github.Options{Token: token}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var kv store.KV
	if fileStore, err := store.OpenFile(config.StatePath()); err != nil {
		log.Warn("state store unavailable, preferences will not persist", "error", err)
		kv = store.NewMemory()
	} else {
		kv = fileStore
	}

	orch := aggregate.NewOrchestrator(client, aggregate.Options{
		Org:               cfg.Org,
		Repos:             cfg.Repos,
		Reviewer:          cfg.Reviewer,
		RepoConcurrency:   cfg.RepoConcurrency,
		PRConcurrency:     cfg.PRConcurrency,
		NewWindow:         cfg.NewWindow(),
		IgnoredCommenters: cfg.IgnoredCommenters,
	}, log)

	log.Info("starting", "version", version, "org", cfg.Org, "repos", len(cfg.Repos))

	p := tea.NewProgram(ui.NewApp(cfg, orch, kv, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
