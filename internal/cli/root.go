// Package cli implements the smartlist command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/smartlist/internal/config"
	"github.com/idilsaglam/smartlist/internal/gate"
	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/store"
	"github.com/idilsaglam/smartlist/internal/ui"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Version is printed by the version subcommand.
var Version = "v0.3.0"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	verbose   bool
	jsonMode  bool
}

// app carries what a command needs once PersistentPreRunE has run.
type app struct {
	flags  rootFlags
	log    *zap.Logger
	cfg    config.Config
	kv     store.KV
	closer io.Closer
	list   *list.Store
	gate   *gate.Gate

	// newLogger is replaceable in tests.
	newLogger func(verbose bool) (*zap.Logger, error)
}

// usageError marks failures caused by bad arguments (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

// newRootCmd creates the top-level "smartlist" command with global flags
// and all subcommands registered.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "smartlist",
		Short: "A shopping checklist with prices, quantities and totals",
		Long: `smartlist keeps a shopping list with prices and quantities, computes
subtotal, discount and total, and persists everything locally.

Run "smartlist tui" for the interactive view.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error { return a.teardown() },
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err.Error()} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: .smartlist or $SMARTLIST_CONFIG_DIR)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (overrides data_dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json|sqlite|memory (overrides backend)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		a.newAddCmd(),
		a.newListCmd(),
		a.newTotalsCmd(),
		a.newPriceCmd(),
		a.newQtyCmd(),
		a.newStepCmd("inc", list.OpIncrement, "Increase quantity by one"),
		a.newStepCmd("dec", list.OpDecrement, "Decrease quantity by one (not below zero)"),
		a.newDoneCmd(),
		a.newRemoveCmd(),
		a.newDiscountCmd(),
		a.newTUICmd(),
		a.newGateCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	a := &app{newLogger: productionLogger}
	return a.run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes args against a fresh command tree. Storage is released even
// when the command fails.
func (a *app) run(args []string, stdout, stderr io.Writer) int {
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `smartlist --help` for usage."))
		return exitUsage
	}
	return exitError
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// setup loads config and opens storage for every command but version.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	log, err := a.newLogger(a.flags.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log

	cfg, err := config.Load(config.ResolveDir(a.flags.configDir))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.flags.dataDir != "" {
		cfg.DataDir = a.flags.dataDir
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	kv, closer, err := store.Open(cfg.Backend, cfg.DataDir, a.log.Named("store"))
	if err != nil {
		if errors.Is(err, store.ErrUnknownBackend) {
			return usageError{err.Error()}
		}
		return fmt.Errorf("open storage: %w", err)
	}
	a.kv, a.closer = kv, closer
	a.log.Debug("storage opened", zap.String("backend", cfg.Backend), zap.String("data_dir", cfg.DataDir))

	a.list = list.New(kv,
		list.WithLogger(a.log.Named("list")),
		list.WithIDGenerator(list.NewIDGenerator(cfg.IDScheme)),
		list.WithRule(cfg.SubtotalRule),
	)
	a.list.Load()
	a.gate = gate.New(cfg.Gate, kv, gate.WithLogger(a.log.Named("gate")))
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.closer != nil {
		err = a.closer.Close()
		a.closer = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

// exactArgs is cobra.ExactArgs with a usage line in the error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: smartlist %s", usage)
		}
		return nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "smartlist "+Version)
		},
	}
}
