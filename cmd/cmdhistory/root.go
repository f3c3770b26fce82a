package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/cmdhistory/internal/app"
	"github.com/dshills/cmdhistory/internal/config"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
	stats      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cmdhistory",
		Short: "Edit a document through an undo/redo command history",
		Long: `cmdhistory edits a line-oriented document through undoable commands.

Every edit is recorded in a bounded history and paired with an implicit
"mark modified" command that is undone and redone together with it.
Edits can be grouped in scopes; closing a scope retracts its commands from
the history without touching anything else.

Examples:
  cmdhistory run edits.yaml            # Run a script
  cmdhistory repl notes.txt            # Edit notes.txt interactively
  cmdhistory config                    # Print the effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: $CMDHISTORY_CONFIG or ./"+config.DefaultFile+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error or off (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.stats, "stats", false, "Print operation statistics on exit")

	cmd.AddCommand(
		newRunCmd(opts),
		newReplCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then the environment, then command-line flags.
func (o *rootOptions) loadConfig() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}

	cfg, err := config.Load(config.Options{Path: path})
	if err != nil {
		return config.Config{}, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newApp builds the application with logs going to logOut.
func (o *rootOptions) newApp(logOut io.Writer, doc *app.Document) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.WithLogOutput(logOut), app.WithDocument(doc))
}
