package main

import (
	"context"
	"image/color"
	"os"
	"os/signal"
	"syscall"

	"toybox/internal/commands"
	"toybox/internal/graphics"
	"toybox/internal/metrics"
	"toybox/internal/physics"
	"toybox/internal/preset"
	"toybox/internal/render"
	"toybox/internal/tool"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

func sandboxCmd(a *app) *cobra.Command {
	var (
		presetName string
		watch      bool
		ephemeral  bool
	)
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Open the collision sandbox window",
		Long: `Open the collision sandbox. Keys 1-7 pick a tool (launch, line, rect, circle,
triangle, move, delete); drag with the left button to use it. Space pauses,
C clears, S saves and L loads the scene snapshot. The backquote key opens a
console that accepts the same commands as "simulate --exec".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSandbox(cmd.Context(), presetName, watch, ephemeral)
		},
	}
	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "preset file or builtin name to start from")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the preset file when it changes")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep snapshots in memory only")
	return cmd
}

func (a *app) runSandbox(parent context.Context, presetName string, watch, ephemeral bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log := a.log.Logger

	st, err := a.openStore(ctx, ephemeral)
	if err != nil {
		return err
	}
	pal, err := a.palette()
	if err != nil {
		return err
	}
	s := a.newScene()
	if presetName != "" {
		p, err := preset.Resolve(presetName)
		if err != nil {
			return err
		}
		if err := p.Apply(s); err != nil {
			return err
		}
		log.Info("preset applied", "preset", p.Name)
	} else if err := s.Load(ctx, st, log); err != nil {
		return err
	}

	m := metrics.New()
	if addr := a.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := m.Serve(ctx, addr, log); err != nil {
				log.Error("metrics server stopped", "err", err)
			}
		}()
	}

	ctl := tool.New(s, pal)
	ctl.LaunchScale = a.cfg.Sandbox.LaunchScale
	ctl.BodyRadius = a.cfg.Sandbox.BodyRadius
	console := render.NewConsole(log)
	reg := commands.NewSandbox(ctx, &commands.Target{
		Scene:      s,
		Store:      st,
		Palette:    pal,
		BodyRadius: a.cfg.Sandbox.BodyRadius,
		Observe: func(stats physics.StepStats) {
			bodies, obstacles := s.Len()
			m.Observe(stats, bodies, obstacles)
		},
		Log: log,
		Out: console,
	})
	console.Bind(reg)
	hud := &render.HUD{ShowFPS: a.cfg.Window.ShowFPS, ShowLog: true, Lines: a.log.Lines}
	view := render.NewSandbox(s, ctl, reg, hud, log)
	view.Metrics = m
	view.Console = console

	if watch && presetName != "" {
		view.Presets = watchPreset(ctx, a, presetName)
	}

	graphics.Run(a.window(rl.RayWhite), view.Update, view.Draw)

	// The signal context may be done by now; the final save still has to land.
	if err := s.Save(context.WithoutCancel(ctx), st); err != nil {
		log.Error("save on exit failed", "err", err)
		return err
	}
	return nil
}

// watchPreset starts a watcher on the preset file. Only the newest reload is kept when
// the frame loop falls behind.
func watchPreset(ctx context.Context, a *app, file string) <-chan *preset.Preset {
	ch := make(chan *preset.Preset, 1)
	if _, err := os.Stat(file); err != nil {
		a.log.Warn("watch needs a preset file on disk", "preset", file)
		return ch
	}
	go func() {
		err := preset.Watch(ctx, file, preset.DefaultDebounce, a.log.Logger, func(p *preset.Preset) {
			select {
			case <-ch:
			default:
			}
			ch <- p
		})
		if err != nil {
			a.log.Error("preset watcher stopped", "err", err)
		}
	}()
	return ch
}

func (a *app) window(bg color.RGBA) graphics.Window {
	w := a.cfg.Window
	return graphics.Window{Width: w.Width, Height: w.Height, Title: w.Title, FPS: w.FPS, Background: bg}
}
