package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/config"
	"github.com/arcanaland/cardex/internal/logging"
)

var (
	cfgFile  string
	database string
	logLevel string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardex",
	Short: "Browse and search a tabletop card catalog",
	Long: `Cardex is a card catalog browser for tabletop card games.
It searches a card database by name, type or description, shows card details
with terminal art, and can serve the same catalog as a small web site.

The card database is a JSON document (a bare array of cards or {"cards": [...]})
or a TOML file of [[cards]] tables, read from a path or an http(s) URL. When it
cannot be loaded a built-in set of sample cards is used instead.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/cardex/config.toml)")
	RootCmd.PersistentFlags().StringVar(&database, "database", "", "card database path or URL (overrides config)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $CARDEX_LOG_LEVEL or warn)")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if database != "" {
		cfg.Database = database
	}
	return cfg, nil
}

// newApp builds the application context. Logger and ThemeStore in opts are
// filled in from the flags and config file.
func newApp(ctx context.Context, format logging.Format, opts app.Options) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logLevel, format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	opts.Logger = logger
	opts.ThemeStore = config.NewThemeStore(cfgFile)
	return app.New(ctx, cfg, opts), nil
}

func syncLogger(a *app.App) {
	if a != nil && a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
