package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/strapikit"
	"github.com/hupe1980/strapikit/config"
	"github.com/hupe1980/strapikit/core"
	"github.com/hupe1980/strapikit/logging"
	"github.com/hupe1980/strapikit/storage"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags shared by all subcommands.
var (
	endpointFlag string
	stateDirFlag string
	verboseFlag  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strapikit",
		Short: "Query a Strapi GraphQL endpoint and manage the local session",
		Long: `strapikit talks to the GraphQL endpoint of a Strapi backend.

It sends queries, logs in with the users-permissions plugin and keeps the
resulting session on disk. Configuration is read from the environment:

  STRAPI_GRAPHQL        GraphQL endpoint (default http://localhost:1337/graphql)
  STRAPI_URL            Backend base URL (default http://localhost:1337)
  STRAPIKIT_TIMEOUT     Request timeout, e.g. 10s (default none)
  STRAPIKIT_STATE_DIR   Session directory
  STRAPIKIT_LOG_LEVEL   debug, info, warn or error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Override the GraphQL endpoint")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "", "Override the session directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		queryCmd(),
		loginCmd(),
		sessionCmd(),
		logoutCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if endpointFlag != "" {
		cfg.GraphQLURL = endpointFlag
	}
	if stateDirFlag != "" {
		cfg.StateDir = stateDirFlag
	}
	if verboseFlag {
		cfg.LogLevel = logging.LogLevelDebug
	}
	return cfg, cfg.Validate()
}

// stderrNotifier prints each GraphQL error message on its own line.
func stderrNotifier(w io.Writer) core.Notifier {
	return core.NotifierFunc(func(_ context.Context, msg string) error {
		_, err := fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", msg)
		return err
	})
}

// newKit builds a Kit persisting the session below cfg.StateDir.
func newKit(cmd *cobra.Command, cfg config.Config) *strapikit.Kit {
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	}).WithComponent("cli")

	return strapikit.New(func(o *strapikit.Options) {
		o.Config = cfg
		o.Storage = storage.NewFileStore(cfg.StateDir)
		o.Notifier = stderrNotifier(cmd.ErrOrStderr())
		o.Logger = logger
	})
}
