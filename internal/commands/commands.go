package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Command is a named operation with its own flags. Run receives the positional
// arguments left after flag parsing.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns one usage line per command.
func (r *Registry) Help() string {
	var b strings.Builder
	for _, name := range r.Names() {
		fmt.Fprintf(&b, "%s %s\n", name, r.cmds[name].Usage)
	}
	return b.String()
}

// Parse tokenises one script line. A line starting with '#' is a comment, and a
// standalone "#" token ends the line; "#rrggbb" colour arguments are kept.
// Blank lines return ok false.
func Parse(line string) (args []string, ok bool) {
	for i, f := range strings.Fields(line) {
		if f == "#" || (i == 0 && strings.HasPrefix(f, "#")) {
			break
		}
		args = append(args, f)
	}
	return args, len(args) > 0
}

// Execute runs the command in args[0]. Flags and positional arguments may be mixed.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	positional, err := parseInterspersed(cmd.FlagSet, args[1:])
	if err != nil {
		return fmt.Errorf("%s: %w (usage: %s %s)", name, err, name, cmd.Usage)
	}
	return cmd.Run(positional)
}

// ExecuteLine parses and runs one line. Blank and comment-only lines do nothing.
func (r *Registry) ExecuteLine(line string) error {
	args, ok := Parse(line)
	if !ok {
		return nil
	}
	return r.Execute(args)
}

// RunScript executes every line of src in order and stops at the first failure.
func (r *Registry) RunScript(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	for n := 1; scanner.Scan(); n++ {
		if err := r.ExecuteLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// parseInterspersed lets flags follow positional arguments, which the flag package
// alone does not allow. Negative numbers are positional, not flags. Flags are reset to
// their defaults first so values do not leak between lines.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	var positional []string
	for {
		for len(args) > 0 && !isFlag(args[0]) {
			positional = append(positional, args[0])
			args = args[1:]
		}
		if len(args) == 0 {
			return positional, nil
		}
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, fmt.Errorf("help requested")
			}
			return nil, err
		}
		args = fs.Args()
	}
}

func isFlag(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	c := s[1]
	return !(c >= '0' && c <= '9') && c != '.'
}
