package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valleyjudge/offer-comparison/internal/calculation"
	"github.com/valleyjudge/offer-comparison/internal/config"
	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/internal/output"
)

// Options holds the flags shared by every entry point.
type Options struct {
	Terminal   string
	Output     string
	NoTaxes    bool
	Debug      bool
	Format     string
	ConfigFile string
}

// NewRootCommand builds the command line for a comparison. When cmp is nil
// the offers come from a YAML file named by --config, and the
// configuration subcommands are available; otherwise cmp is compared as is.
func NewRootCommand(cmp *domain.Comparison, stdout, stderr io.Writer) *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "valleyjudge",
		Short: "Compare job offers by projected cumulative after-tax income",
		Long: `valleyjudge projects salary, bonus and vesting equity of each offer over
the comparison horizon, applies federal and state taxes, and writes a
gnuplot script plotting cumulative income. Pipe the output into gnuplot.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveComparison(cmp, opts.ConfigFile)
			if err != nil {
				return err
			}
			return run(*c, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	})

	flags := rootCmd.Flags()
	flags.StringVar(&opts.Terminal, "terminal", "", "gnuplot terminal, e.g. 'pngcairo size 1600,900'")
	flags.StringVar(&opts.Output, "output", "", "file gnuplot should render to")
	flags.BoolVar(&opts.NoTaxes, "notaxes", false, "disable tax calculation and plot pre-tax income")
	flags.BoolVar(&opts.Debug, "debug", false, "turn on debug logging")
	flags.StringVar(&opts.Format, "format", output.DefaultFormat,
		fmt.Sprintf("output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))

	if cmp == nil {
		rootCmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML file describing the offers")
		rootCmd.AddCommand(newExampleConfigCommand(), newValidateCommand(&opts))
	}
	return rootCmd
}

// Execute runs the command line described by NewRootCommand with args,
// which exclude the program name.
func Execute(cmp *domain.Comparison, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCommand(cmp, stdout, stderr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrUsage):
		return 2
	default:
		return 1
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q for %s", domain.ErrUsage, args[0], cmd.CommandPath())
	}
	return nil
}

func resolveComparison(cmp *domain.Comparison, configFile string) (*domain.Comparison, error) {
	if cmp != nil {
		return cmp, nil
	}
	if configFile == "" {
		return nil, fmt.Errorf("%w: --config is required", domain.ErrUsage)
	}
	return config.NewInputParser().LoadFromFile(configFile)
}

func run(cmp domain.Comparison, opts Options, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := calculation.NewSlogLogger(stderr, level)

	formatter, err := output.LookupFormatter(opts.Format, output.Options{
		Terminal: opts.Terminal,
		Output:   opts.Output,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUsage, err)
	}

	if opts.NoTaxes {
		cmp.NoTaxes = true
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger)
	logger.Debugf("comparing %d offers, format %s", len(cmp.Offers), formatter.Name())

	results, err := engine.Compare(cmp)
	if err != nil {
		return err
	}
	return output.WriteFormatted(formatter, results, stdout)
}

func newExampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example offers file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: %s takes at most one file", domain.ErrUsage, cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			example := config.NewInputParser().CreateExampleConfiguration()
			if len(args) == 0 {
				return config.WriteConfiguration(cmd.OutOrStdout(), example)
			}
			if err := config.SaveConfiguration(example, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Example configuration written to %s\n", args[0])
			return nil
		},
	}
}

func newValidateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check an offers file without computing anything",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := resolveComparison(nil, opts.ConfigFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d offers, valid\n", opts.ConfigFile, len(cmp.Offers))
			return nil
		},
	}
}
