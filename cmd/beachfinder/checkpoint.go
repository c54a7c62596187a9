package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
	classifystage "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline/stages/classify"
)

var checkpointStage string

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or reset stage checkpoints",
}

// checkpointStore needs only the home directory, not the full service set.
func checkpointStore() (*checkpoint.Store, error) {
	h, err := loadHome()
	if err != nil {
		return nil, err
	}
	return checkpoint.NewStore(h.CheckpointsDir()), nil
}

var checkpointShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved checkpoint of a stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := checkpointStore()
		if err != nil {
			return err
		}
		cp, err := store.Load(checkpointStage)
		if err != nil {
			return err
		}
		if output.IsStructured() {
			return output.Print(cp)
		}
		if cp == nil {
			fmt.Printf("No checkpoint for %s\n", checkpointStage)
			return nil
		}
		fmt.Printf("%s: %s\n", checkpointStage, cp)
		return nil
	},
}

var checkpointClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the checkpoint of a stage so the next run starts over",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := checkpointStore()
		if err != nil {
			return err
		}
		if err := store.Delete(checkpointStage); err != nil {
			return err
		}
		fmt.Printf("Cleared checkpoint for %s\n", checkpointStage)
		return nil
	},
}

func init() {
	checkpointCmd.PersistentFlags().StringVar(&checkpointStage, "stage", classifystage.Name, "Stage name")
	checkpointCmd.AddCommand(checkpointShowCmd)
	checkpointCmd.AddCommand(checkpointClearCmd)
	rootCmd.AddCommand(checkpointCmd)
}
