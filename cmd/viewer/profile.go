package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"showroom/internal/profile"
)

func profileCommand() *cobra.Command {
	var (
		compact   string
		width     int
		maxWidth  int
		userAgent string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the camera poses for a form factor",
		Long:  "Print the initial, front, rear and zoom camera poses. Without --compact the form factor is derived from --width and --user-agent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c bool
			switch compact {
			case "true":
				c = true
			case "false":
				c = false
			case "", "auto":
				c = profile.IsCompact(width, userAgent, maxWidth)
			default:
				return fmt.Errorf("--compact must be true, false or auto, got %q", compact)
			}
			profile.Print(cmd.OutOrStdout(), profile.Resolve(c))
			return nil
		},
	}
	cmd.Flags().StringVar(&compact, "compact", "auto", "Form factor: true, false or auto")
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width in pixels")
	cmd.Flags().IntVar(&maxWidth, "max-width", profile.DefaultCompactMaxWidth, "Widest viewport treated as compact")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "User agent string")
	return cmd
}
