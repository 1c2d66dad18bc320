package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tably/tably/internal/app"
	"github.com/tably/tably/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	if cfg.Log.Enabled {
		f, err := tea.LogToFile(cfg.Log.File, "tably")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
	}

	// Optional positional argument: the file to open at startup
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	app := app.New(cfg, path)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
