package commands

import (
	"errors"
	"fmt"
	"io"
)

// ErrMissingColor is returned by paint without a colour.
var ErrMissingColor = errors.New("paint: colour required")

// Triggers is the fire-and-forget surface of the viewer.
type Triggers interface {
	RequestToggleDoors() error
	RequestSwitchView() error
	RequestRecolor(color string) error
	RequestCloseNow() error
}

// Standard returns a registry with the viewer commands: doors, view, close, paint and help.
// help writes to out. Each caller gets its own registry, so flag state is never shared
// between goroutines.
func Standard(t Triggers, out io.Writer) *Registry {
	r := NewRegistry()
	r.Register("doors", "open or close the doors", nil, func([]string) error {
		return t.RequestToggleDoors()
	})
	r.Register("view", "switch between the front and rear view", nil, func([]string) error {
		return t.RequestSwitchView()
	})
	r.Register("close", "snap the doors shut without animation", nil, func([]string) error {
		return t.RequestCloseNow()
	})

	var color string
	fs := NewFlagSet("paint")
	fs.StringVarP(&color, "color", "c", "", "body colour as #rrggbb")
	r.Register("paint", "repaint the body: paint --color #rrggbb or paint rrggbb", fs, func(args []string) error {
		c := color
		if c == "" && len(args) > 0 {
			c = args[0]
		}
		if c == "" {
			return ErrMissingColor
		}
		return t.RequestRecolor(c)
	})

	r.Register("help", "list commands", nil, func([]string) error {
		_, err := fmt.Fprint(out, r.Help())
		return err
	})
	return r
}
