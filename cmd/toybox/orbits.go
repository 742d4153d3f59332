package main

import (
	"image/color"

	"toybox/internal/graphics"
	"toybox/internal/orbit"
	"toybox/internal/raster"
	"toybox/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

// orbitExtent is the farthest any solar system body gets from the sun, with margin.
const orbitExtent = 95

func orbitsCmd(a *app) *cobra.Command {
	var (
		pngPath string
		advance float64
	)
	cmd := &cobra.Command{
		Use:   "orbits",
		Short: "Show the solar system on eccentric orbits",
		Long: `Show the eight planets and the Moon on their elliptical orbits. Space pauses,
Up and Down double or halve the time scale, R resets it and P toggles the paths.
With --png the system is rendered top-down to an image instead of a window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOrbits(pngPath, advance)
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a top-down PNG here and exit")
	cmd.Flags().Float64Var(&advance, "advance", 0, "simulated seconds to run before rendering the PNG")
	return cmd
}

func (a *app) runOrbits(pngPath string, advance float64) error {
	cfg := a.cfg.Orbit
	sys := orbit.SolarSystem()
	sys.SetTimeScale(cfg.TimeScale)

	if pngPath != "" {
		for ; advance > 0; advance -= orbit.MaxStep {
			sys.Tick(min(advance, orbit.MaxStep))
		}
		w := a.cfg.Window
		opts := raster.DefaultOptions()
		opts.Background = color.Black
		opts.LineWidth = 1
		// Fit Neptune's aphelion inside the shorter side.
		opts.Scale = float64(min(w.Width, w.Height)) / (2 * orbitExtent)
		img := raster.Orbits(sys, w.Width, w.Height, cfg.PathSegments, opts)
		if err := raster.WritePNG(pngPath, img); err != nil {
			return err
		}
		a.log.Info("orbits rendered", "png", pngPath)
		return nil
	}

	hud := &render.HUD{ShowFPS: a.cfg.Window.ShowFPS}
	view := render.NewOrbits(sys, cfg.PathSegments, cfg.ShowPaths, hud)
	graphics.Run(a.window(rl.Black), view.Update, view.Draw)
	return nil
}
