// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/piconnect/piconnect/internal/config"
	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to piconnect.yaml",
		Long: `Writes the configuration in effect (defaults, config file, environment and
flags merged) to the user config directory, the system directory with
--system, or the path given with --file. An existing file is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			system, _ := cmd.Flags().GetBool("system")

			path := file
			var err error
			if file != "" {
				err = config.WriteConfigFileTo(&a.cfg, file)
			} else {
				path, err = config.WriteConfigFile(&a.cfg, system)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.config_written", path))
			return nil
		},
	}
	initCmd.Flags().String("file", "", "write to this path instead of the config directory")
	initCmd.Flags().Bool("system", false, "write the system-wide file (/etc/piconnect)")

	cmd.AddCommand(initCmd)
	return cmd
}
