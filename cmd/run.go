package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/explicitize"
	"github.com/njchilds90/explicitize/config"
	"github.com/njchilds90/explicitize/pipeline"
)

// variables for flags
var (
	tolerance    float64
	sigDigits    int
	target       string
	gens         string
	latexPath    string
	csvPath      string
	workers      int
	colorOutput  bool
	showProgress bool
)

var runCmd = &cobra.Command{
	Use:   "run <model.yaml>",
	Short: "Solve every row of an implicit model for its derivative",
	Long: `Reads a model document (feature_names, xdot, right_coeff and optional
left_coeff) and prints one explicit model per solvable row.
Example) explicitize run model.yaml --target x0 --csv models.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m, err := config.LoadModel(args[0])
		if err != nil {
			return err
		}
		_, err = runConvert(cmd.Context(), logger, cmd.OutOrStdout(), m, cfg, showProgress)
		return err
	},
}

func init() {
	runCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "Drop coefficients at or below this magnitude")
	runCmd.Flags().IntVar(&sigDigits, "sig-digits", config.DefaultSigDigits, "Significant digits of final coefficients (0 disables rounding)")
	runCmd.Flags().StringVar(&target, "target", "", "Preferred denominator monomial, written like a feature (e.g. x0x1)")
	runCmd.Flags().StringVar(&gens, "gens", "", "Comma-separated generator tokens for the denominator")
	runCmd.Flags().StringVar(&latexPath, "latex", "", "Write models to this LaTeX file")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write model statistics to this CSV file")
	runCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Number of rows solved concurrently")
	runCmd.Flags().BoolVar(&colorOutput, "color", false, "Colour console output")
	runCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")
}

// loadConfig reads --config when given and lets explicitly set flags
// override the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("sig-digits") {
		cfg.SigDigits = sigDigits
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("gens") {
		cfg.Gens = nil
		for _, g := range strings.Split(gens, ",") {
			if g = strings.TrimSpace(g); g != "" {
				cfg.Gens = append(cfg.Gens, g)
			}
		}
	}
	if flags.Changed("latex") {
		cfg.LaTeXPath = latexPath
	}
	if flags.Changed("csv") {
		cfg.CSVPath = csvPath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("color") {
		cfg.Color = colorOutput
	}
	return cfg, cfg.Validate()
}

func runConvert(ctx context.Context, logger *zap.Logger, out io.Writer, m config.Model, cfg config.Config, progress bool) (*pipeline.Result, error) {
	opts := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithOutput(out)}
	if progress {
		bar := progressbar.NewOptions(len(m.FeatureNames),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		opts = append(opts, pipeline.WithObserver(func(pipeline.Outcome) { _ = bar.Add(1) }))
		defer func() { _ = bar.Finish() }()
	}

	res, err := explicitize.Convert(ctx, m, cfg, opts...)
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return res, err
	}
	return res, nil
}
