package main

import (
	"io"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"railsgen/internal/codegen"
	"railsgen/internal/openapi"
	"railsgen/internal/ui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browses the routing model in the terminal",
	Long: "Loads the OpenAPI description, builds the routing model the\n" +
		"generator would render and shows it grouped by path, with the\n" +
		"controller action, parameters, responses and JSON examples.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.InputSpec == "" {
			return errors.NotValidf("empty input spec")
		}

		lang, err := cfg.Language()
		if err != nil {
			return err
		}
		doc, err := openapi.Load(cmd.Context(), cfg.InputSpec, cfg.SpecHeaders)
		if err != nil {
			return err
		}
		spec := openapi.Convert(doc)

		// Diagnostics would draw over the screen.
		quiet := log.New()
		quiet.SetOutput(io.Discard)

		res, err := codegen.NewProcessor(lang, quiet).Process(spec)
		if err != nil {
			return err
		}

		title := spec.Title
		if spec.Version != "" {
			title += " " + spec.Version
		}
		return ui.NewApp(title, res.PathGroups).Run()
	},
}
