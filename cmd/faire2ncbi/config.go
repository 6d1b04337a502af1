package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oceanomics/faire2ncbi/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the tool configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective tool configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		cfg, err := config.Load(path)
		if err != nil {
			printError("Reading %s: %v", path, err)
			return err
		}
		printInfo("Config file: %s", path)
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if _, err := os.Stat(path); err == nil && !force {
			printWarning("%s already exists; use --force to overwrite.", path)
			return nil
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			printError("Writing %s: %v", path, err)
			return err
		}
		printSuccess("Wrote default configuration to %s", path)
		return nil
	},
}
