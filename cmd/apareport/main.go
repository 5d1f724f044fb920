package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/simone-mordue/papaja"
	"github.com/simone-mordue/papaja/adapters/excel"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/domain/core"
	"github.com/simone-mordue/papaja/internal"
	"github.com/simone-mordue/papaja/internal/config"
)

var logger = internal.NewDefaultLogger("apareport")

func main() {
	// Optional .env for report defaults (PAPAJA_DIGITS etc.)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "apareport",
		Short: "Typeset APA-style reports from tabular datasets",
		Long: `apareport reads a dataset (XLSX or CSV), runs a statistical
comparison on the named columns, and prints the APA-style report strings.

Example: apareport compare scores.xlsx treatment control --digits 2`,
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newCorrelateCmd(),
		newAnovaCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// reportFlags are the typesetting options shared by all subcommands.
type reportFlags struct {
	digits      int
	confLevel   float64
	leadingZero bool
	bigMark     string
	decimalMark string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	defaults, err := config.FromEnv()
	if err != nil {
		logger.Warn("ignoring environment options: %v", err)
		defaults = config.Default()
	}
	cmd.Flags().IntVar(&f.digits, "digits", defaults.Digits, "fractional digits for typeset numbers")
	cmd.Flags().Float64Var(&f.confLevel, "conf-level", defaults.ConfLevel, "confidence level for intervals, in (0,1)")
	cmd.Flags().BoolVar(&f.leadingZero, "leading-zero", defaults.LeadingZero, "keep the leading zero on unbounded values")
	cmd.Flags().StringVar(&f.bigMark, "big-mark", defaults.BigMark, "thousands separator")
	cmd.Flags().StringVar(&f.decimalMark, "decimal-mark", defaults.DecimalMark, "decimal point substitution")
}

func (f *reportFlags) options() []papaja.Option {
	return []papaja.Option{
		papaja.WithDigits(f.digits),
		papaja.WithConfLevel(f.confLevel),
		papaja.WithLeadingZero(f.leadingZero),
		papaja.WithBigMark(f.bigMark),
		papaja.WithDecimalMark(f.decimalMark),
	}
}

func newCompareCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "compare [file] [column-x] [column-y]",
		Short: "Welch t-test comparing two numeric columns",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := readDataset(args[0])
			if err != nil {
				return err
			}
			x, err := dataset.NumericColumn(args[1])
			if err != nil {
				return err
			}
			y, err := dataset.NumericColumn(args[2])
			if err != nil {
				return err
			}

			result := apa.SampleComparison{
				X: apa.Sample{Name: args[1], Values: x},
				Y: apa.Sample{Name: args[2], Values: y},
			}
			return printReport(result, flags.options())
		},
	}
	flags.register(cmd)
	return cmd
}

func newCorrelateCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "correlate [file] [column-x] [column-y]",
		Short: "Pearson correlation of two aligned numeric columns",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := readDataset(args[0])
			if err != nil {
				return err
			}
			x, err := dataset.NumericColumn(args[1])
			if err != nil {
				return err
			}
			y, err := dataset.NumericColumn(args[2])
			if err != nil {
				return err
			}

			result := apa.PairedSamples{
				XName: args[1],
				YName: args[2],
				X:     x,
				Y:     y,
			}
			return printReport(result, flags.options())
		},
	}
	flags.register(cmd)
	return cmd
}

func newAnovaCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "anova [file] [value-column] [group-column]",
		Short: "One-way ANOVA of a numeric column split by a grouping column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := readDataset(args[0])
			if err != nil {
				return err
			}
			levels, groups, err := dataset.SplitBy(args[1], args[2])
			if err != nil {
				return err
			}

			samples := make([]apa.Sample, 0, len(levels))
			for _, level := range levels {
				samples = append(samples, apa.Sample{Name: level, Values: groups[level]})
			}
			result := apa.GroupedSamples{Outcome: args[1], Groups: samples}
			return printReport(result, flags.options())
		},
	}
	flags.register(cmd)
	return cmd
}

func readDataset(path string) (*excel.Dataset, error) {
	logger.Debug("reading dataset %s", path)
	return excel.NewDataReader(path).ReadData()
}

// printReport runs the pipeline and writes the report envelope as indented
// JSON to stdout.
func printReport(result apa.AnalysisResult, options []papaja.Option) error {
	report, err := papaja.Print(result, options...)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	envelope := struct {
		ID     string      `json:"id"`
		Tag    string      `json:"tag"`
		Report *apa.Result `json:"report"`
	}{
		ID:     string(core.NewReportID()),
		Tag:    string(result.Tag()),
		Report: report,
	}
	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
