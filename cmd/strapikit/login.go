package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/strapikit/graphql"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var (
		identifier    string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in with the users-permissions plugin and store the returned
token and user below the state directory. Later queries send the token.

Examples:
  strapikit login --identifier ada@example.com --password secret
  echo secret | strapikit login --identifier ada --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if identifier == "" || password == "" {
				return errors.New("both --identifier and a password are required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			k := newKit(cmd, cfg)

			data, err := k.Login(cmd.Context(), identifier, password)
			if graphql.IsResponseError(err) {
				return errors.New("login rejected")
			}
			if err != nil {
				return err
			}

			name := identifier
			if u := data.User(); u != nil {
				if v, ok := u["username"].(string); ok && v != "" {
					name = v
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "i", "", "Username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := newKit(cmd, cfg).Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
