package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/config"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/output"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to --config, or to config.yaml in
the home directory. An existing file is kept unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			h, err := loadHome()
			if err != nil {
				return err
			}
			path = h.ConfigPath()
		}
		if err := config.WriteDefault(path, configForce); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

type configValue struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHome()
		if err != nil {
			return err
		}
		mgr, err := loadConfig(h)
		if err != nil {
			return err
		}

		entries := config.DefaultEntries()
		values := make([]configValue, 0, len(entries))
		for _, e := range entries {
			values = append(values, configValue{
				Key:         e.Key,
				Value:       mgr.Value(e.Key),
				Default:     e.Value,
				Description: e.Description,
			})
		}
		if output.IsStructured() {
			return output.Print(values)
		}

		if used := mgr.ConfigFileUsed(); used != "" {
			fmt.Printf("# %s\n", used)
		} else {
			fmt.Println("# defaults (no config file)")
		}
		for _, v := range values {
			fmt.Printf("%-42s %v\n", v.Key, v.Value)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
