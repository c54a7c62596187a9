package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/svcctx"
)

type statusReport struct {
	Database    string                            `json:"database" yaml:"database"`
	Beaches     store.Counts                      `json:"beaches" yaml:"beaches"`
	Checkpoints map[string]*checkpoint.Checkpoint `json:"checkpoints" yaml:"checkpoints"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show enrichment progress and saved checkpoints",
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

		db := svcctx.DBFrom(ctx)
		counts, err := db.CountBeaches(ctx)
		if err != nil {
			return err
		}
		reg, err := stageRegistry(svc, nil, nil)
		if err != nil {
			return err
		}
		report := statusReport{
			Database:    db.Path(),
			Beaches:     counts,
			Checkpoints: make(map[string]*checkpoint.Checkpoint),
		}
		for _, name := range reg.Names() {
			cp, err := svcctx.CheckpointsFrom(ctx).Load(name)
			if err != nil {
				return err
			}
			report.Checkpoints[name] = cp
		}

		if output.IsStructured() {
			return output.Print(report)
		}
		fmt.Printf("Database: %s\n", report.Database)
		fmt.Printf("  Beaches:       %s\n", humanize.Comma(counts.Total))
		fmt.Printf("  Bare:          %s\n", humanize.Comma(counts.Bare))
		fmt.Printf("  Classified:    %s\n", humanize.Comma(counts.Classified))
		fmt.Printf("  With sections: %s\n", humanize.Comma(counts.WithSections))
		fmt.Println("Checkpoints:")
		for _, name := range reg.Names() {
			if cp := report.Checkpoints[name]; cp != nil {
				fmt.Printf("  %-10s %s\n", name, cp)
			} else {
				fmt.Printf("  %-10s none\n", name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
