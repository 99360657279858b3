package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/hupe1980/strapikit/config"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	var withStyling bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long:  `Print the configuration after applying environment variables and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			view := configView{
				GraphQLURL: cfg.GraphQLURL,
				StrapiURL:  cfg.StrapiURL,
				Timeout:    cfg.Timeout.String(),
				StateDir:   cfg.StateDir,
				LogLevel:   cfg.LogLevel.String(),
			}
			if cfg.Timeout == 0 {
				view.Timeout = "none"
			}
			if withStyling {
				view.Styling = &cfg.Styling
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}

	cmd.Flags().BoolVar(&withStyling, "styling", false, "Include the styling settings")

	return cmd
}

type configView struct {
	GraphQLURL string          `json:"graphqlURL"`
	StrapiURL  string          `json:"strapiURL"`
	Timeout    string          `json:"timeout"`
	StateDir   string          `json:"stateDir"`
	LogLevel   string          `json:"logLevel"`
	Styling    *config.Styling `json:"styling,omitempty"`
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the strapikit CLI.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}

			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", date)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
