package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toybox/internal/life"
	"toybox/internal/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func lifeCmd(a *app) *cobra.Command {
	var (
		pattern string
		seed    int64
		running bool
	)
	cmd := &cobra.Command{
		Use:   "life",
		Short: "Run Conway's Game of Life in the terminal",
		Long: fmt.Sprintf(`Run Conway's Game of Life in the terminal. Click a cell to toggle it.
Space runs or pauses, n steps once, r randomises, c clears, p stamps the next
pattern and q quits. Patterns: %s.`, patternNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLife(cmd.Context(), pattern, seed, running)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "start from a named pattern instead of random cells")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&running, "run", true, "start running instead of paused")
	return cmd
}

func patternNames() string {
	var s string
	for i, p := range life.Patterns() {
		if i > 0 {
			s += ", "
		}
		s += p.Name
	}
	return s
}

func (a *app) runLife(parent context.Context, pattern string, seed int64, running bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := a.cfg.Life
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid := life.New(cfg.Width, cfg.Height, cfg.Wrap)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("life: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("life: %w", err)
	}
	defer screen.Fini()

	ui := tui.New(screen, grid, cfg.Density, seed)
	ui.Log = a.log.Logger
	ui.Running = running
	if pattern != "" {
		p, err := life.FindPattern(pattern)
		if err != nil {
			return err
		}
		w, h := p.Size()
		grid.Stamp(p, (cfg.Width-w)/2, (cfg.Height-h)/2)
	} else {
		ui.Randomize()
	}
	a.log.Info("life started", "seed", seed, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return ui.Run(ctx, cfg.Interval)
}
