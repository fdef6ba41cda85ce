// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the persistent flags shared by every
// subcommand and the service wiring done before each run.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"

	"github.com/piconnect/piconnect/internal/api"
	"github.com/piconnect/piconnect/internal/config"
	"github.com/piconnect/piconnect/internal/core"
	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/internal/registry"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/spf13/cobra"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// app is the state shared by the commands of one root command.
type app struct {
	cfg     config.Config
	api     *api.API
	verbose bool
	out     io.Writer
}

// setup loads the configuration and builds the service graph. It runs
// before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	var configFile string
	if cmd.Flags().Changed("config") {
		configFile, _ = cmd.Flags().GetString("config")
	}

	c, err := config.LoadConfig[config.Config](cmd, config.Defaults(), configFile)
	if err != nil {
		return errors.New(i18n.T("cli.error_config", err))
	}
	a.cfg = c

	if !slices.Contains(i18n.Available(), c.Language) {
		return errors.New(i18n.T("cli.error_lang", c.Language, strings.Join(i18n.Available(), ", ")))
	}
	i18n.Init(c.Language)

	if err := logging.SetLevel(c.Log.Level); err != nil {
		return err
	}
	if a.verbose {
		logging.SetDebug(true)
	}

	if _, err := formatterFor(c.Output.Format); err != nil {
		return err
	}

	opts := remote.Options{
		Port:        strconv.Itoa(c.SSH.Port),
		ReadTimeout: c.SSH.ReadTimeout,
		DialTimeout: c.SSH.DialTimeout,
	}
	if c.SSH.KnownHosts != "" {
		cb, err := remote.HostKeyCallback(c.SSH.KnownHosts)
		if err != nil {
			return err
		}
		opts.HostKeyCallback = cb
	}

	svc := core.NewService(registry.New(),
		core.WithDialer(core.SSHDialer(opts)),
		core.WithInventoryCommand(c.Inventory.Command),
	)
	a.api = api.New(svc)
	logging.Debugf("config loaded: port=%d read_timeout=%s command=%q", c.SSH.Port, c.SSH.ReadTimeout, c.Inventory.Command)
	return nil
}

// Execute runs the CLI entrypoint. The main package handles process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command. Every call returns an independent
// command tree, which tests rely on.
func NewRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "piconnect",
		Short: "PiConnect connects to Raspberry Pis over SSH and lists their external drives.",
		Long: `PiConnect opens a password-authenticated SSH session to each host,
reads the filesystem usage table and reports the external drives it finds.
Successful connections are kept in an in-memory registry for the lifetime
of the process.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			logging.SetOutput(cmd.ErrOrStderr())
			return a.setup(cmd)
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("lang", "en", `output language ("en", "de")`)
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	cmd.PersistentFlags().Int("port", 22, "SSH port used when the host has none")
	cmd.PersistentFlags().Duration("read-timeout", remote.DefaultReadTimeout, "per-read timeout on the SSH transport")
	cmd.PersistentFlags().Duration("dial-timeout", 0, "TCP connect timeout (0 waits for the operating system)")
	cmd.PersistentFlags().String("known-hosts", "", "verify host keys against this known_hosts file")
	cmd.PersistentFlags().String("command", "df -h", "filesystem usage command run on the remote host")

	cmd.AddCommand(newConnectCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newLsCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
		},
	}
}

func compositeVersion() string {
	info, _ := debug.ReadBuildInfo()
	return versionString(info)
}

// versionString combines the linker values with the module version and VCS
// stamps the toolchain embeds. Linker values win when set.
func versionString(info *debug.BuildInfo) string {
	v, commit, date := version, gitCommit, buildDate
	if info != nil {
		if mv := info.Main.Version; v == "dev" && mv != "" && mv != "(devel)" {
			v = mv
		}
		for _, st := range info.Settings {
			switch {
			case st.Key == "vcs.revision" && commit == "dev" && st.Value != "":
				commit = st.Value
				if len(commit) > 7 {
					commit = commit[:7]
				}
			case st.Key == "vcs.time" && date == "":
				date = st.Value
			}
		}
	}

	out := v
	if commit != "" && commit != "dev" {
		out += " (" + commit + ")"
	}
	if date != "" {
		out += " built: " + date
	}
	return out
}
