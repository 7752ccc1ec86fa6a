package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/Noyack/webapp-sub003/internal/tui"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: nestegg-tui <plan-file>")
		os.Exit(1)
	}
	planPath := os.Args[1]

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(planPath).WithSettings(settings)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
