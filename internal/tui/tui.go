// Package tui draws the Game of Life grid in a terminal with tcell and drives it from
// keyboard and mouse input.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"toybox/internal/life"

	"github.com/gdamore/tcell/v2"
)

const (
	liveRune = '█'
	deadRune = ' '
)

var (
	liveStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
)

// App owns one grid and the screen it is drawn on. Grid cell (x, y) maps to screen
// cell (x, y); the last screen row is the status bar.
type App struct {
	Screen  tcell.Screen
	Grid    *life.Grid
	Running bool
	Density float64
	Log     *slog.Logger

	rng     *rand.Rand
	pattern int
}

// New returns a paused app. seed drives Randomize.
func New(screen tcell.Screen, grid *life.Grid, density float64, seed int64) *App {
	return &App{
		Screen:  screen,
		Grid:    grid,
		Density: density,
		Log:     slog.New(slog.DiscardHandler),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Draw paints the grid and the status bar and shows the frame.
func (a *App) Draw() {
	a.Screen.Clear()
	w, h := a.Screen.Size()
	for y := 0; y < a.Grid.H && y < h-1; y++ {
		for x := 0; x < a.Grid.W && x < w; x++ {
			if a.Grid.Alive(x, y) {
				a.Screen.SetContent(x, y, liveRune, nil, liveStyle)
			} else {
				a.Screen.SetContent(x, y, deadRune, nil, tcell.StyleDefault)
			}
		}
	}
	state := "paused"
	if a.Running {
		state = "running"
	}
	status := fmt.Sprintf(" gen %d  pop %d  %s  [space] run/pause [n] step [r] random [c] clear [p] %s [q] quit",
		a.Grid.Generation(), a.Grid.Population(), state, a.nextPattern().Name)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		a.Screen.SetContent(x, h-1, r, nil, statusStyle)
	}
	a.Screen.Show()
}

func (a *App) nextPattern() life.Pattern {
	ps := life.Patterns()
	return ps[a.pattern%len(ps)]
}

// Handle applies one input event and reports whether the app should keep going.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			if x < a.Grid.W && y < a.Grid.H {
				a.Grid.Toggle(x, y)
			}
		}
	case *tcell.EventResize:
		a.Screen.Sync()
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		a.Running = !a.Running
	case 'n':
		a.Grid.Step()
	case 'r':
		a.Randomize()
	case 'c':
		a.Grid.Clear()
	case 'p':
		p := a.nextPattern()
		pw, ph := p.Size()
		a.Grid.Stamp(p, (a.Grid.W-pw)/2, (a.Grid.H-ph)/2)
		a.pattern++
		a.Log.Debug("pattern stamped", "pattern", p.Name)
	}
	return true
}

// Randomize refills the grid from the app's seeded source at Density.
func (a *App) Randomize() {
	a.Grid.Randomize(a.rng, a.Density)
}

// Tick advances one generation when running.
func (a *App) Tick() {
	if a.Running {
		a.Grid.Step()
	}
}

// Run draws and steps every interval until ctx is done or the user quits. The screen
// must already be initialised; Run does not call Fini.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	a.Screen.EnableMouse()
	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go a.Screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !a.Handle(ev) {
				return nil
			}
			a.Draw()
		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}
