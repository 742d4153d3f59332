package main

import (
	"context"
	"fmt"
	"os"

	"toybox/internal/engineconfig"
	"toybox/internal/env"
	"toybox/internal/logger"
	"toybox/internal/palette"
	"toybox/internal/scene"
	"toybox/internal/store"

	"github.com/spf13/cobra"
)

const defaultConfigHint = engineconfig.DefaultPath

type rootOptions struct {
	configPath string
	logLevel   string
	envFile    string
}

// app is the state shared by every subcommand once the root has loaded it.
type app struct {
	cfg        engineconfig.Config
	log        *logger.Logger
	configPath string
}

// setup reads the dotenv file, the config and the TOYBOX_* overrides, then opens the
// logger. stderr is off for the terminal UI, which owns the screen.
func (a *app) setup(opts *rootOptions, stderr bool) error {
	if err := env.Load(opts.envFile); err != nil {
		return err
	}
	path := opts.configPath
	if path == "" {
		path = engineconfig.DefaultPath
	}
	cfg, err := engineconfig.Load(path)
	if err != nil {
		return err
	}
	if err := engineconfig.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Level: level, File: cfg.Log.File, Stderr: stderr})
	if err != nil {
		return err
	}
	a.cfg, a.log, a.configPath = cfg, log, path
	log.Debug("config loaded", "path", path)
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}

// newScene builds an empty scene from the sandbox section.
func (a *app) newScene() *scene.Scene {
	sb := a.cfg.Sandbox
	s := scene.New(sb.Width, sb.Height, scene.Limits{MinRadius: sb.MinRadius, MinShape: sb.MinShape})
	s.SetMaxStep(sb.MaxStep)
	return s
}

func (a *app) palette() (*palette.Palette, error) {
	p, err := palette.New(a.cfg.Sandbox.Palette)
	if err != nil {
		return nil, fmt.Errorf("sandbox palette: %w", err)
	}
	return p, nil
}

// openStore returns the snapshot store, or a memory store when ephemeral is set.
func (a *app) openStore(ctx context.Context, ephemeral bool) (store.Store, error) {
	dir := a.cfg.Storage.Dir
	if ephemeral {
		dir = ""
	}
	return store.Open(ctx, dir)
}

func configCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration as YAML",
		Long: `Write the configuration after defaults, the config file and TOYBOX_*
overrides have been applied. Without --out the config file itself is rewritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := out
			if path == "" {
				path = a.configPath
			}
			if err := engineconfig.Save(path, a.cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write here instead of the config file")
	return cmd
}
