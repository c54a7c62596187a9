package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/llmcall"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/svcctx"
)

var (
	callsBeachID  int64
	callsRunID    string
	callsPrompt   string
	callsProvider string
	callsFailed   bool
	callsLimit    int
	callsID       string
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List recorded LLM calls",
	Long: `List provider calls recorded during enrichment runs, newest first.

Examples:
  beachfinder calls --beach-id 42
  beachfinder calls --run-id <uuid> --failed
  beachfinder calls --id <call-id> -o yaml   # Full record including response`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup, err := withServices(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		calls := svcctx.LLMCallStoreFrom(ctx)

		if callsID != "" {
			call, err := calls.Get(ctx, callsID)
			if err != nil {
				return err
			}
			if call == nil {
				return fmt.Errorf("call %s not found", callsID)
			}
			return output.Print(call)
		}

		filter := llmcall.QueryFilter{
			BeachID:   callsBeachID,
			RunID:     callsRunID,
			PromptKey: callsPrompt,
			Provider:  callsProvider,
			Limit:     callsLimit,
		}
		if callsFailed {
			success := false
			filter.Success = &success
		}
		list, err := calls.List(ctx, filter)
		if err != nil {
			return err
		}
		if output.IsStructured() {
			return output.Print(list)
		}

		if len(list) == 0 {
			fmt.Println("No calls recorded")
			return nil
		}
		for _, c := range list {
			status := "ok"
			if !c.Success {
				status = "FAILED: " + c.Error
			}
			fmt.Printf("%s  #%-5d %-20s %s/%s  %dms  in=%s out=%s  %s\n",
				humanize.Time(c.Timestamp), c.BeachID, c.PromptKey, c.Provider, c.Model,
				c.LatencyMs, humanize.Comma(int64(c.InputTokens)), humanize.Comma(int64(c.OutputTokens)), status)
		}
		return nil
	},
}

func init() {
	callsCmd.Flags().Int64Var(&callsBeachID, "beach-id", 0, "Filter by beach")
	callsCmd.Flags().StringVar(&callsRunID, "run-id", "", "Filter by run")
	callsCmd.Flags().StringVar(&callsPrompt, "prompt", "", "Filter by prompt key")
	callsCmd.Flags().StringVar(&callsProvider, "provider", "", "Filter by provider")
	callsCmd.Flags().BoolVar(&callsFailed, "failed", false, "Only failed calls")
	callsCmd.Flags().IntVar(&callsLimit, "limit", 20, "Maximum number of calls")
	callsCmd.Flags().StringVar(&callsID, "id", "", "Show a single call")
	rootCmd.AddCommand(callsCmd)
}
