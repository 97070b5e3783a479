package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josegonzalez/gamenote/pkg/app"
)

func newTokenCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Show the access token, minting one when none is cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, global, func(a *app.App) error {
				_, cached := a.CachedToken(cmd.Context())
				token, err := a.Tokens().Ensure(cmd.Context())
				if err != nil {
					return err
				}
				source := "cached"
				if !cached {
					source = "minted"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", app.MaskToken(token), source)
				return err
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Mint and cache a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, global, func(a *app.App) error {
				token, err := a.Tokens().Refresh(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (minted)\n", app.MaskToken(token))
				return err
			})
		},
	})
	return cmd
}

// withApp builds the app for cmd, runs fn and writes metrics afterwards.
func withApp(cmd *cobra.Command, global *globalFlags, fn func(a *app.App) error) error {
	a, err := newApp(cmd, global)
	if err != nil {
		return err
	}
	defer func() {
		if werr := a.WriteMetrics(global.metricsFile); werr != nil {
			a.Logger().Warn("failed to write metrics", "path", global.metricsFile, "error", werr)
		}
	}()
	return fn(a)
}
