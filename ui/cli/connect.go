// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/internal/model"
	"github.com/piconnect/piconnect/internal/security"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passwordEnv is read when --password is not given.
const passwordEnv = "PICONNECT_PASSWORD"

// Terminal access, replaced in tests.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// resolvePassword returns the password from the flag, the environment or
// a no-echo prompt, in that order. An empty prompt answer is rejected.
func resolvePassword(cmd *cobra.Command, user, host string) (security.Secret, error) {
	if cmd.Flags().Changed("password") {
		p, err := cmd.Flags().GetString("password")
		return security.FromString(p), err
	}
	if p, ok := os.LookupEnv(passwordEnv); ok {
		return security.FromString(p), nil
	}
	if !stdinIsTerminal() {
		return nil, errors.New(i18n.T("cli.error_password_required"))
	}
	fmt.Fprint(cmd.ErrOrStderr(), i18n.T("cli.password_prompt", user, host))
	b, err := readPassword()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return nil, errors.New(i18n.T("cli.error_read_password", err))
	}
	secret := security.FromBytes(b)
	clear(b)
	if secret.Empty() {
		return nil, errors.New(i18n.T("cli.error_password_required"))
	}
	return secret, nil
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "pi", "SSH user name")
	cmd.Flags().StringP("password", "p", "", "SSH password (prompted for when omitted)")
}

func newConnectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <host>...",
		Short: "Connect to one or more hosts and list their external drives",
		Long: `Connects to each host in turn with the same credentials, reads its
filesystem usage and records the connection. The registry is printed once
all hosts were tried. The command fails if any host failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")

			var failed int
			for _, host := range args {
				password, err := resolvePassword(cmd, user, host)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.connecting", host, user))
				_, err = a.api.ConnectToPi(host, user, password.Reveal())
				password.Zero()
				if err != nil {
					failed++
					logging.Errorf("%v", err)
					continue
				}
				if rec, ok := lastFor(a, host); ok {
					fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.connected", rec.Name, len(rec.StorageDevices)))
				}
			}

			conns, _ := a.api.GetConnectedPis()
			if err := printConnections(a.out, a.cfg.Output.Format, conns); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.summary", len(args)-failed, failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d connection(s) failed", failed, len(args))
			}
			return nil
		},
	}
	addCredentialFlags(cmd)
	return cmd
}

// lastFor returns the newest registry record for host. Connections are
// made one after another, so it is the one just created.
func lastFor(a *app, host string) (model.Connection, bool) {
	conns, _ := a.api.GetConnectedPis()
	for i := len(conns) - 1; i >= 0; i-- {
		if conns[i].IP == host {
			return conns[i], true
		}
	}
	return model.Connection{}, false
}
