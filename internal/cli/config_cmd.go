package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/reusecalc/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes a config
// file with default values to $REUSECALC_HOME/config.yaml or --config.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.reusecalc/config.yaml
  reusecalc config init

  # Overwrite an existing file
  reusecalc config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTargetPath(cmd)
			if err != nil {
				return err
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err = config.Default().Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(configFromContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func configTargetPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.ConfigPath()
}
