package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the connection to the active provider",
	Long: `Send a minimal prompt to the configured provider and report whether
it answered. The call is recorded like any other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup, err := withServices(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		svc, err := servicesFrom(ctx)
		if err != nil {
			return err
		}

		gen, err := newGenerator(svc, newRunID())
		if err != nil {
			return err
		}

		timeout := 30 * time.Second
		if _, pcfg, err := svc.Config.Get().ActiveProvider(); err == nil && pcfg.TimeoutSeconds > 0 {
			timeout = pcfg.Timeout()
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if !gen.TestConnection(ctx) {
			return fmt.Errorf("provider %s (%s) did not respond", gen.Provider().Name(), gen.Model())
		}
		fmt.Printf("✓ %s (%s) is reachable\n", gen.Provider().Name(), gen.Model())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
