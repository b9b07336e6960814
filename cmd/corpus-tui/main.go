package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/rgehrsitz/corpus/internal/tui"
)

func main() {
	noWatch := flag.Bool("no-watch", false, "Do not reload the plan when the file changes")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: corpus-tui [--no-watch] <plan-file>")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	planPath := flag.Arg(0)

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	model := tui.NewModel(planPath, tui.Options{Watch: !*noWatch})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
