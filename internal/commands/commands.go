package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUnknownCommand is returned by Execute for a name nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a named trigger with its own flags. Run receives the positional arguments left
// after flag parsing.
type Command struct {
	Name    string
	Usage   string
	FlagSet *pflag.FlagSet
	Run     func(args []string) error
}

// Registry holds commands by name. Add commands with Register; run them with Run or Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a quiet flag set for a command: parse errors are returned, never printed.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a command. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *pflag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Help returns one line per command: name, usage and flags.
func (r *Registry) Help() string {
	var b strings.Builder
	for _, n := range r.Names() {
		c := r.cmds[n]
		fmt.Fprintf(&b, "%-8s %s\n", c.Name, c.Usage)
		if u := c.FlagSet.FlagUsages(); u != "" {
			b.WriteString(u)
		}
	}
	return b.String()
}

// Parse tokenizes a line by whitespace. Blank lines and # comments yield no tokens.
func Parse(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	return strings.Fields(line)
}

// Run parses and executes one line. Blank lines are a no-op.
func (r *Registry) Run(line string) error {
	args := Parse(line)
	if len(args) == 0 {
		return nil
	}
	return r.Execute(args)
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Flags are reset to their defaults first, so values never leak between runs.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	reset(cmd.FlagSet)
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

func reset(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
