// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the connection registry",
		Long: `Prints the connections recorded by this process. The registry lives in
memory only, so a fresh process starts empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conns, err := a.api.GetConnectedPis()
			if err != nil {
				return err
			}
			return printConnections(a.out, a.cfg.Output.Format, conns)
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <host> [path]",
		Short: "Connect to a host and list a remote directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}
			user, _ := cmd.Flags().GetString("user")
			password, err := resolvePassword(cmd, user, host)
			if err != nil {
				return err
			}
			defer password.Zero()

			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.connecting", host, user))
			if _, err := a.api.ConnectToPi(host, user, password.Reveal()); err != nil {
				return err
			}
			rec, ok := lastFor(a, host)
			if !ok {
				return errors.New(i18n.T("connect.error_not_found", host))
			}

			entries, err := a.api.ListDirectory(rec.ID, password.Reveal(), dir)
			if err != nil {
				return err
			}
			return printEntries(a.out, a.cfg.Output.Format, entries)
		},
	}
	addCredentialFlags(cmd)
	return cmd
}
