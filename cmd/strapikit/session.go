package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hupe1980/strapikit"
	"github.com/hupe1980/strapikit/core"
	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the stored session",
		Long: `Show the session stored by "strapikit login".

The token claims are decoded without verifying the signature; the signing
secret is only known to the backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			k := newKit(cmd, cfg)

			data, err := readStoredSession(cmd.Context(), k)
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No session. Run 'strapikit login' first.")
				return nil
			}
			if err != nil {
				return err
			}

			summary := sessionSummary{User: data.User()}
			if token := data.Token(); token != "" {
				claims, err := tokenClaims(token)
				if err != nil {
					return fmt.Errorf("decode token: %w", err)
				}
				summary.Claims = claims
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					t := exp.Time.UTC()
					summary.ExpiresAt = &t
					summary.Expired = time.Now().After(t)
				}
				if showToken {
					summary.Token = token
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().BoolVar(&showToken, "show-token", false, "Include the raw token in the output")

	return cmd
}

type sessionSummary struct {
	User      core.User     `json:"user"`
	Claims    jwt.MapClaims `json:"claims,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
	Expired   bool          `json:"expired"`
	Token     string        `json:"token,omitempty"`
}

// readStoredSession returns the session persisted by a previous login.
func readStoredSession(ctx context.Context, k *strapikit.Kit) (core.SessionData, error) {
	return k.State().LoadPersisted(ctx)
}

// tokenClaims decodes the claims of token without checking its signature.
func tokenClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
