package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/Noyack/webapp-sub003/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Manage user preferences",
		Long:  "Preferences in config.toml supply defaults that plan files and flags can override.",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default preferences file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.SettingsPath()
			if config.SettingsExist() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveSettings(config.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing preferences file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(settings)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the preferences file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.SettingsPath())
		},
	}

	cfg.AddCommand(initCmd, showCmd, pathCmd)
	return cfg
}
