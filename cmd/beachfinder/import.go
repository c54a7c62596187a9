package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/svcctx"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load beach records from a YAML or JSON file",
	Long: `Upsert beaches from a seed file. Each entry needs an id and a name;
municipality, lat, lng and description are optional.

Example file:
  - id: 1
    name: Flamenco
    municipality: Culebra
    lat: 18.33
    lng: -65.32`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup, err := withServices(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		db := svcctx.DBFrom(ctx)

		n, err := db.ImportFile(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d beaches into %s\n", n, db.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
