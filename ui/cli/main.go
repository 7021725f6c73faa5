// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/opexport/internal/config"
	"github.com/toeirei/opexport/internal/export"
	"github.com/toeirei/opexport/internal/i18n"
	"github.com/toeirei/opexport/internal/loader"
	"github.com/toeirei/opexport/internal/logging"
	"github.com/toeirei/opexport/internal/op"
	"github.com/toeirei/opexport/internal/tui"
	"golang.org/x/term"
)

// Seams replaced by tests.
var (
	newSource = func(c config.Config) loader.Source {
		return op.NewClient(op.ExecRunner{
			Binary:  c.OP.Binary,
			Cache:   c.OP.Cache,
			Timeout: c.OP.Timeout,
		})
	}
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	runBrowser = func(ctx context.Context, l tui.Loader, opts tui.Options) (tui.Outcome, error) {
		return tui.Run(ctx, l, opts)
	}
)

// rootOptions holds the flags that are not configuration keys.
type rootOptions struct {
	cfgFile     string
	verbose     bool
	showVersion bool
	writeConfig bool

	cfg config.Config
}

// Execute runs the CLI. Interrupts cancel the running load or export.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates the root command. Every call returns an independent
// command so tests can run it in isolation.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "opexport [path]",
		Short: i18n.T("app.short"),
		Long:  i18n.T("app.long"),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New(i18n.T("cli.usage_args", len(args)))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.showVersion {
				return nil
			}
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion(nil))
				return nil
			}
			if o.writeConfig {
				return nil
			}
			cmd.SilenceUsage = true
			if len(args) == 1 {
				return o.exportAll(cmd, args[0])
			}
			return o.interactive(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.showVersion, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file")
	cmd.Flags().BoolVar(&o.writeConfig, "write-config", false, "Write the effective configuration to the user config file and exit")
	applyConfigFlags(cmd)

	return cmd
}

// applyConfigFlags defines one flag per configuration key. The flag names
// match the keys so LoadConfig can bind them directly.
func applyConfigFlags(cmd *cobra.Command) {
	d := config.Defaults()
	f := cmd.Flags()
	f.String("language", d["language"].(string), `UI language ("en", "de")`)
	f.String("op.binary", d["op.binary"].(string), "Path of the 1Password CLI")
	f.Bool("op.cache", d["op.cache"].(bool), "Pass --cache to the 1Password CLI")
	f.Duration("op.timeout", d["op.timeout"].(time.Duration), "Timeout for a single op call (0 disables it)")
	f.Int("loader.concurrency", d["loader.concurrency"].(int), "Number of items fetched in parallel")
	f.Duration("ui.tick_interval", d["ui.tick_interval"].(time.Duration), "Refresh interval of the loading indicator")
	f.Bool("export.indent", d["export.indent"].(bool), "Indent the exported JSON")
	f.String("log.file", d["log.file"].(string), "Log file used while the browser is open")
}

// getConfigPathFromCli returns the --config path if the flag was set. The
// file must exist.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	logging.SetDebug(o.verbose)

	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	o.cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if o.cfg.Language == "" {
		o.cfg.Language = "en"
	}
	i18n.Init(o.cfg.Language)
	logging.Debugf("config: %+v", o.cfg)

	if o.writeConfig {
		written, err := config.WriteConfigFile(&o.cfg, false)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.config_written", written))
	}
	return nil
}

func (o *rootOptions) newLoader(opts ...loader.Option) *loader.Loader {
	opts = append([]loader.Option{loader.WithConcurrency(o.cfg.Loader.Concurrency)}, opts...)
	return loader.New(newSource(o.cfg), opts...)
}

func (o *rootOptions) exportOptions() export.Options {
	return export.Options{Indent: o.cfg.Export.Indent}
}

// exportAll writes the complete, unfiltered tree to path.
func (o *rootOptions) exportAll(cmd *cobra.Command, path string) error {
	data, err := o.newLoader().Load(cmd.Context())
	if err != nil {
		return err
	}
	res, err := export.Save(data, nil, path, o.exportOptions())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.exported", res.Accounts, res.Vaults, res.Items, res.Path))
	return nil
}

// interactive runs the browser. Logging goes to the configured file while
// the browser owns the terminal.
func (o *rootOptions) interactive(cmd *cobra.Command) error {
	if !isTerminal() {
		return errors.New(i18n.T("cli.no_terminal"))
	}

	restore, err := logging.RedirectToFile(o.cfg.Log.File)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
	}
	progress := &tui.Progress{}
	out, err := runBrowser(cmd.Context(), o.newLoader(loader.WithProgress(progress.Update)), tui.Options{
		TickInterval: o.cfg.UI.TickInterval,
		Export:       o.exportOptions(),
		Progress:     progress,
	})
	restore()
	if err != nil {
		return err
	}

	if out.Saved {
		r := out.Result
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.saved", r.Path, r.Accounts, r.Vaults, r.Items))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.cancelled"))
	return nil
}
