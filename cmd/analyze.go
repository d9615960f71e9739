package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/helmcode/review-insights/pkg/analyzer"
	"github.com/helmcode/review-insights/pkg/config"
	"github.com/helmcode/review-insights/pkg/formatter"
	"github.com/helmcode/review-insights/pkg/llm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newLLM is replaced in tests.
var newLLM = llm.CreateFromConfig

type analyzeOptions struct {
	configFile string
	reviewFile string
	output     string
	provider   string
	model      string
	timeout    time.Duration
	verbose    bool
}

func NewAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a customer review with AI assistance",
		Long: `Send a customer review to an LLM and print its overall sentiment, key insights
and actionable items as structured output.

Examples:
  # Analyze the default review file (customer_review/review.txt)
  review-insights analyze

  # Analyze another file and print YAML
  review-insights analyze -f reviews/latest.txt -o yaml

  # Use Claude instead of OpenAI
  review-insights analyze --provider claude`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file (default ./review-insights.yaml)")
	cmd.Flags().StringVarP(&opts.reviewFile, "file", "f", "", "Review text file (default "+config.DefaultReviewFile+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format (json, yaml, human)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider (openai, claude). Defaults to LLM_PROVIDER or openai")
	cmd.Flags().StringVar(&opts.model, "model", "", "LLM model to use (overrides default)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Timeout for the LLM request (default 60s)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	stderr := cmd.ErrOrStderr()
	configureLogging(stderr, opts.verbose)

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.reviewFile != "" {
		cfg.ReviewFile = opts.reviewFile
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.timeout != 0 {
		cfg.LLM.Timeout = opts.timeout
	}
	if opts.provider != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(opts.provider))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Credentials are resolved before the review is read so that a
	// misconfigured run does no work at all.
	llmClient, err := newLLM(cfg.LLM, "", opts.model)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	reviewText, err := readReview(cfg.ReviewFile)
	if err != nil {
		return err
	}

	printHeader(stderr, cfg.ReviewFile, llmClient)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderr))
	s.Suffix = " Analyzing review with AI..."
	s.Start()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
	defer cancel()

	analysis, err := analyzer.NewWithLLM(llmClient).AnalyzeReview(ctx, reviewText)
	s.Stop()
	if err != nil {
		return fmt.Errorf("AI analysis failed: %w", err)
	}
	printSuccess(stderr, "Analysis complete")

	return formatter.DisplayResults(cmd.OutOrStdout(), analysis, cfg.Output)
}

func readReview(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read review file: %w", err)
	}
	log.WithFields(log.Fields{"path": path, "bytes": len(data)}).Debug("Review file loaded")
	return string(data), nil
}

func configureLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

func printHeader(w io.Writer, reviewFile string, l llm.LLM) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🔍 Customer Review Analyzer")
	fmt.Fprintf(w, "📝 Review: %s\n", reviewFile)
	fmt.Fprintf(w, "🤖 Model: %s (%s)\n", l.GetModel(), l.Name())
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}
