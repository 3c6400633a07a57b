package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoCodeAlone/femglue"
	"github.com/GoCodeAlone/femglue/internal/logging"
)

// OsExit is swapped out by tests.
var OsExit = os.Exit

// Version information
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintVersion returns the version banner
func PrintVersion() string {
	return fmt.Sprintf("femglue v%s (commit: %s, built on: %s)", Version, Commit, Date)
}

type globalOptions struct {
	precision  int
	logLevel   string
	logConsole bool
	configDir  string

	// base is the configuration published by setup, before any document section.
	base *femglue.Config
	// logger is installed by setup.
	logger *logging.Adapter
}

// NewRootCommand creates the root command for the femglue application
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "femglue",
		Short: "femglue - define and check 3D geometries for FEM solvers",
		Long: `femglue loads geometry documents (points, lines, polylines and planar polygons),
validates them and reports what a solver would receive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.IntVar(&opts.precision, "precision", 0, "decimal places used for rounding (overrides femglue.json)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.logConsole, "log-console", true, "human readable log output")
	flags.StringVar(&opts.configDir, "config-dir", ".", "directory holding femglue.json and femglue.env")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// setup installs the logger and publishes the configuration.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	logger, err := logging.Install(logging.Config{
		Level:   o.logLevel,
		Output:  cmd.ErrOrStderr(),
		Console: o.logConsole,
	})
	if err != nil {
		return err
	}
	o.logger = logger
	femglue.SetVerboseConfig(strings.EqualFold(o.logLevel, "debug"))

	cfg, err := femglue.LoadConfig(o.configDir, femglue.ConfigFeeders...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := o.overridePrecision(cmd, cfg); err != nil {
		return err
	}
	if err := femglue.SetCurrent(cfg); err != nil {
		return err
	}
	o.base = femglue.Current()
	return nil
}

// overridePrecision applies --precision to cfg when the flag was given. Zero
// is rejected rather than treated as "use the default".
func (o *globalOptions) overridePrecision(cmd *cobra.Command, cfg *femglue.Config) error {
	if !cmd.Flags().Changed("precision") {
		return nil
	}
	if o.precision < 1 {
		return fmt.Errorf("%w: --precision %d", femglue.ErrPrecisionOutOfRange, o.precision)
	}
	cfg.Precision = o.precision
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), PrintVersion())
			return err
		},
	}
}
