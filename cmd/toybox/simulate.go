package main

import (
	"context"
	"io"
	"os"

	"toybox/internal/sim"

	"github.com/spf13/cobra"
)

type simulateOptions struct {
	sim.Options
	script    string
	ephemeral bool
	json      bool
}

func simulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the sandbox headless from a preset and commands",
		Long: `Run the sandbox without a window. The scene starts empty, from the stored
snapshot (--load) or from a preset, then the --exec commands run in order,
then the --script file ("-" for stdin), then the scene advances by --duration
seconds. Run "toybox simulate --exec help" for the command list.`,
		Example: `  toybox simulate --preset pinball --duration 5 --png pinball.png
  toybox simulate --exec "launch 100 100 200 0" --exec "rect 400 50 20 300" --duration 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulate(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Preset, "preset", "p", "", "preset file or builtin name to start from")
	f.StringArrayVarP(&opts.Exec, "exec", "e", nil, "sandbox command to run (repeatable)")
	f.StringVar(&opts.script, "script", "", "file of sandbox commands, one per line")
	f.Float64VarP(&opts.Duration, "duration", "d", 0, "simulated seconds to advance after the commands")
	f.StringVar(&opts.PNG, "png", "", "render the final scene to this PNG")
	f.BoolVar(&opts.Load, "load", false, "start from the stored snapshot")
	f.BoolVar(&opts.Save, "save", false, "store the final scene as the snapshot")
	f.BoolVar(&opts.ephemeral, "ephemeral", false, "keep snapshots in memory only")
	f.BoolVar(&opts.json, "json", false, "print the summary as JSON")
	cmd.MarkFlagsMutuallyExclusive("preset", "load")
	return cmd
}

func (a *app) runSimulate(ctx context.Context, opts *simulateOptions, stdin io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := a.openStore(ctx, opts.ephemeral)
	if err != nil {
		return err
	}
	pal, err := a.palette()
	if err != nil {
		return err
	}

	run := opts.Options
	switch opts.script {
	case "":
	case "-":
		run.Script, run.ScriptName = stdin, "stdin"
	default:
		f, err := os.Open(opts.script)
		if err != nil {
			return err
		}
		defer f.Close()
		run.Script, run.ScriptName = f, opts.script
	}

	r := &sim.Runner{
		Scene:      a.newScene(),
		Store:      st,
		Palette:    pal,
		BodyRadius: a.cfg.Sandbox.BodyRadius,
		Log:        a.log.Logger,
		Out:        out,
	}
	if opts.json {
		r.Out = io.Discard
	}
	sum, err := r.Run(ctx, run)
	if err != nil {
		return err
	}
	return sum.Write(out, opts.json)
}
