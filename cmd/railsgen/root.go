package main

import (
	"os"
	"strings"
	"time"

	formatters "github.com/fabienm/go-logrus-formatters"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsgen/internal/config"
)

const (
	defaultLogsFormat = "text"

	envPrefix     = "RAILSGEN"
	envConfig     = "CONFIG"
	envInputSpec  = "INPUT_SPEC"
	envDebug      = "DEBUG"
	envLogsFormat = "LOGS_FORMAT"
)

//nolint:errcheck
func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.BindEnv(envConfig)
	viper.BindEnv(envInputSpec)
	viper.BindEnv(envDebug)
	viper.BindEnv(envLogsFormat)

	flags := rootCmd.PersistentFlags()

	flags.StringP("config", "c", "", "YAML configuration file")
	flags.StringP("input-spec", "i", "", "OpenAPI description, as a file path or an http(s) URL")
	flags.StringToString("header", nil, "Header sent when fetching a remote description (name=value)")
	flags.Bool("debug", false, "Enable debug logs")
	flags.String("logs-format", defaultLogsFormat, "Format of the logs (text or gelf)")

	viper.BindPFlag(envConfig, flags.Lookup("config"))
	viper.BindPFlag(envInputSpec, flags.Lookup("input-spec"))
	viper.BindPFlag(envDebug, flags.Lookup("debug"))
	viper.BindPFlag(envLogsFormat, flags.Lookup("logs-format"))
}

var rootCmd = &cobra.Command{
	Use:   "railsgen",
	Short: "Rails 5 server stub generator for OpenAPI descriptions",
	Long: "railsgen reads an OpenAPI description and writes a Rails 5 API\n" +
		"skeleton: one controller per router-controller, a routes file\n" +
		"and a copy of the description.\n",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var formatter log.Formatter
		switch format := viper.GetString(envLogsFormat); format {
		case "text":
			textFormatter := new(log.TextFormatter)
			textFormatter.TimestampFormat = time.RFC3339
			textFormatter.FullTimestamp = true
			formatter = textFormatter
		case "gelf":
			hostname, _ := os.Hostname()
			formatter = formatters.NewGelf(hostname)
		default:
			return errors.NotValidf("logs format %q", format)
		}
		log.SetOutput(os.Stderr)
		log.SetFormatter(formatter)

		if viper.GetBool(envDebug) {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

// loadConfig reads the configuration file, if any, then applies the input
// flags shared by every command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := viper.GetString(envConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := strings.TrimSpace(viper.GetString(envInputSpec)); v != "" {
		cfg.InputSpec = v
	}

	headers, err := cmd.Flags().GetStringToString("header")
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(headers) > 0 && cfg.SpecHeaders == nil {
		cfg.SpecHeaders = map[string]string{}
	}
	for k, v := range headers {
		cfg.SpecHeaders[k] = v
	}
	return cfg, nil
}
