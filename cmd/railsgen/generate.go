package main

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsgen/internal/generator"
)

const (
	envOutputDir        = "OUTPUT_DIR"
	envGenerator        = "GENERATOR"
	envTemplateDir      = "TEMPLATE_DIR"
	envSkipEmbeddedSpec = "SKIP_EMBEDDED_SPEC"
	envAppName          = "APP_NAME"
	envAppVersion       = "APP_VERSION"
)

//nolint:errcheck
func init() {
	viper.BindEnv(envOutputDir)
	viper.BindEnv(envGenerator)
	viper.BindEnv(envTemplateDir)
	viper.BindEnv(envSkipEmbeddedSpec)
	viper.BindEnv(envAppName)
	viper.BindEnv(envAppVersion)

	flags := generateCmd.Flags()

	flags.StringP("output", "o", "", "Output directory")
	flags.StringP("generator", "g", "", "Generator name (rails5)")
	flags.String("template-dir", "", "Folder of *.tmpl files overriding the embedded templates")
	flags.Bool("skip-embedded-spec", false, "Do not write the description next to the generated code")
	flags.String("app-name", "", "Application name written in file headers (defaults to the description title)")
	flags.String("app-version", "", "Application version written in file headers (defaults to the description version)")

	viper.BindPFlag(envOutputDir, flags.Lookup("output"))
	viper.BindPFlag(envGenerator, flags.Lookup("generator"))
	viper.BindPFlag(envTemplateDir, flags.Lookup("template-dir"))
	viper.BindPFlag(envSkipEmbeddedSpec, flags.Lookup("skip-embedded-spec"))
	viper.BindPFlag(envAppName, flags.Lookup("app-name"))
	viper.BindPFlag(envAppVersion, flags.Lookup("app-version"))

	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates the Rails 5 server stub",
	Long: "Reads the OpenAPI description and writes the controllers, the\n" +
		"routes file and the embedded description to the output directory.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		for key, dst := range map[string]*string{
			envOutputDir:   &cfg.OutputDir,
			envGenerator:   &cfg.Generator,
			envTemplateDir: &cfg.TemplateDir,
			envAppName:     &cfg.AppName,
			envAppVersion:  &cfg.AppVersion,
		} {
			if v := strings.TrimSpace(viper.GetString(key)); v != "" {
				*dst = v
			}
		}
		if viper.GetBool(envSkipEmbeddedSpec) {
			cfg.SkipEmbeddedSpec = true
		}

		logger := log.StandardLogger()
		g, err := generator.New(cfg, afero.NewOsFs(), logger)
		if err != nil {
			return err
		}
		files, err := g.Run(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range files {
			logger.WithField("file", f).Info("written")
		}
		return nil
	},
}
