package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	classifystage "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline/stages/classify"
)

var (
	promptBeachID int64
	promptStage   string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render the prompt a stage would send for a beach",
	Long: `Render the exact prompt a stage would send for one beach without
calling the provider.

Examples:
  beachfinder prompt --beach-id 42
  beachfinder prompt --beach-id 42 --stage sections
  beachfinder prompt list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if promptBeachID == 0 {
			return fmt.Errorf("--beach-id is required")
		}
		ctx, cleanup, err := withServices(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		svc, err := servicesFrom(ctx)
		if err != nil {
			return err
		}

		reg, err := stageRegistry(svc, nil, nil)
		if err != nil {
			return err
		}
		stage, err := reg.Get(promptStage)
		if err != nil {
			return err
		}
		item, err := stage.Lookup(ctx, promptBeachID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("beach %d not found", promptBeachID)
		}

		text, err := stage.Prompt(ctx, *item)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

type promptInfo struct {
	Key         string   `json:"key" yaml:"key"`
	Hash        string   `json:"hash" yaml:"hash"`
	Description string   `json:"description" yaml:"description"`
	Variables   []string `json:"variables" yaml:"variables"`
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered prompt templates and their hashes",
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

		var infos []promptInfo
		for _, p := range svc.Prompts.All() {
			infos = append(infos, promptInfo{
				Key:         p.Key,
				Hash:        p.Hash,
				Description: p.Description,
				Variables:   p.Variables,
			})
		}
		if output.IsStructured() {
			return output.Print(infos)
		}
		for _, p := range infos {
			fmt.Printf("%-28s %.12s  %s\n", p.Key, p.Hash, p.Description)
		}
		return nil
	},
}

func init() {
	promptCmd.Flags().Int64Var(&promptBeachID, "beach-id", 0, "Beach to render the prompt for")
	promptCmd.Flags().StringVar(&promptStage, "stage", classifystage.Name, "Stage whose prompt to render")
	promptCmd.AddCommand(promptListCmd)
	rootCmd.AddCommand(promptCmd)
}
