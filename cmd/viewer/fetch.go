package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showroom/internal/assets"
	"showroom/internal/logger"
	"showroom/internal/manifest"
)

func fetchCommand() *cobra.Command {
	var dest, manifestPath string
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a model bundle into the assets directory",
		Long:  "Download a zip bundle (or a single .glb/.gltf/.obj) and extract it. Nodes the manifest names but the bundle lacks are listed afterwards.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logger.Options{NoFile: true, Console: os.Stderr})
			if err != nil {
				return err
			}
			man, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			if dest == "" {
				dest = man.Assets
			}

			log.Info().Str("url", args[0]).Str("dest", dest).Msg("fetching")
			models, err := assets.Fetch(cmd.Context(), nil, args[0], dest)
			if err != nil {
				return err
			}
			log.Info().Int("models", len(models)).Msg("fetched")

			missing := assets.Missing(dest, man.Nodes())
			for _, n := range missing {
				fmt.Fprintf(cmd.OutOrStdout(), "missing: %s\n", n)
			}
			if len(missing) > 0 {
				log.Warn().Int("missing", len(missing)).Msg("bundle does not cover every node; those nodes will not draw")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory (default: the manifest's assets directory)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Scene manifest YAML (default: built-in)")
	return cmd
}
