package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/config"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline"
	classifystage "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline/stages/classify"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/svcctx"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/validate"
)

var (
	enrichBeachID      int64
	enrichStartID      int64
	enrichBatchSize    int
	enrichDryRun       bool
	enrichValidateOnly bool
	enrichLimit        int
	enrichStage        string
	enrichAll          bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Generate content for beaches",
	Long: `Run an enrichment stage over the beach database.

Beaches are processed one at a time in id order. Progress is checkpointed
so an interrupted run resumes after the last attempted beach.

Examples:
  beachfinder enrich                          # Classify every bare beach
  beachfinder enrich --beach-id 42 --dry-run  # Preview one beach
  beachfinder enrich --stage sections --limit 20
  beachfinder enrich --validate-only          # Re-check stored content
  beachfinder enrich --all                    # Run every stage in order`,
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
		cfg := svc.Config.Get()

		logger := svcctx.LoggerFrom(ctx)
		svc.Config.OnChange(func(*config.Config) {
			logger.Info("config file changed; new values apply on the next run")
		})
		svc.Config.WatchConfig()

		runID := newRunID()
		var gen *providers.Generator
		if !enrichValidateOnly {
			if gen, err = newGenerator(svc, runID); err != nil {
				return err
			}
		}

		// One memo per invocation so repeated sentences are caught across beaches
		reg, err := stageRegistry(svc, gen, validate.NewSentenceMemo())
		if err != nil {
			return err
		}

		var stages []pipeline.Stage
		if enrichAll {
			if stages, err = reg.Ordered(); err != nil {
				return err
			}
		} else {
			s, err := reg.Get(enrichStage)
			if err != nil {
				return err
			}
			stages = []pipeline.Stage{s}
		}

		batchSize := enrichBatchSize
		if batchSize <= 0 {
			batchSize = cfg.Pipeline.BatchSize
		}
		opts := pipeline.Options{
			BeachID:      enrichBeachID,
			StartID:      enrichStartID,
			BatchSize:    batchSize,
			DryRun:       enrichDryRun,
			ValidateOnly: enrichValidateOnly,
			Limit:        enrichLimit,
		}

		var results []*pipeline.RunStats
		for _, stage := range stages {
			runner := pipeline.NewRunner(stage, pipeline.RunnerConfig{
				Checkpoints:  svc.Checkpoints,
				SaveInterval: cfg.Pipeline.SaveInterval,
				ChunkPause:   cfg.Pipeline.ChunkPause(),
				RunID:        runID,
				Logger:       logger,
			})
			stats, err := runner.Run(ctx, opts)
			if err != nil {
				return err
			}
			results = append(results, stats)
			if !output.IsStructured() {
				fmt.Print(stats.Report())
			}
			if stats.Interrupted {
				break
			}
		}

		if sum, err := svc.LLMCallStore.Summarize(ctx, runID); err != nil {
			logger.Warn("failed to summarize LLM calls", "error", err)
		} else if sum.Calls > 0 {
			logger.Info("LLM usage",
				"calls", sum.Calls,
				"failed", sum.Failed,
				"input_tokens", humanize.Comma(sum.InputTokens),
				"output_tokens", humanize.Comma(sum.OutputTokens),
			)
		}

		if output.IsStructured() {
			return output.Print(results)
		}
		return nil
	},
}

func init() {
	enrichCmd.Flags().Int64Var(&enrichBeachID, "beach-id", 0, "Process a single beach")
	enrichCmd.Flags().Int64Var(&enrichStartID, "start-id", 0, "Resume after this beach id instead of the checkpoint")
	enrichCmd.Flags().IntVar(&enrichBatchSize, "batch-size", 0, "Beaches per chunk (default: pipeline.batch_size)")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "Generate and validate without saving")
	enrichCmd.Flags().BoolVar(&enrichValidateOnly, "validate-only", false, "Re-validate stored content without generating")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "Maximum number of beaches (0 = all)")
	enrichCmd.Flags().StringVar(&enrichStage, "stage", classifystage.Name, "Stage to run")
	enrichCmd.Flags().BoolVar(&enrichAll, "all", false, "Run every stage in dependency order")
	enrichCmd.MarkFlagsMutuallyExclusive("dry-run", "validate-only")
	enrichCmd.MarkFlagsMutuallyExclusive("stage", "all")

	rootCmd.AddCommand(enrichCmd)
}
