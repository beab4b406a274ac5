package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ppiankov/ipspectre/internal/loader"
	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/internal/pipeline"
	"github.com/ppiankov/ipspectre/internal/reporter"
	"github.com/ppiankov/ipspectre/internal/reputation"
	"github.com/ppiankov/ipspectre/pkg/config"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	var maxAgeStr string
	var configPath string

	cmd := &cobra.Command{
		Use:     "check [input.xlsx]",
		Aliases: []string{"enrich"},
		Short:   "Look up every IP in a spreadsheet and write an enriched copy",
		Long: `Read IP addresses from the first column of an .xlsx file, query AbuseIPDB
for each one in order and write output_<YYYYMMDDHHMMSS>.xlsx with the
confidence score, number of reports, last report time and time elapsed.

Lookups that fail are reported and left blank; the run continues.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.InputFile = args[0]
			}
			isSet := func(name string) bool {
				if name == "input" && len(args) > 0 {
					return true
				}
				return cmd.Flags().Changed(name)
			}

			var (
				fileCfg  *config.FileConfig
				filePath string
				err      error
			)
			if configPath != "" {
				fileCfg, err = config.LoadFile(configPath)
				filePath = configPath
			} else {
				fileCfg, filePath, err = config.AutoLoadFile()
			}
			if err != nil {
				return err
			}
			if fileCfg != nil {
				slog.Debug("config file loaded", slog.String("path", filePath))
				if err := fileCfg.Apply(cfg, isSet); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("max-age") {
				cfg.MaxAge, err = config.ParseDuration(maxAgeStr)
				if err != nil {
					return fmt.Errorf("invalid --max-age duration: %w", err)
				}
			}

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runCheck(ctx, cfg, cmd.OutOrStdout())
		},
	}

	// Input flags
	cmd.Flags().StringVar(&cfg.InputFile, "input", cfg.InputFile, "Input .xlsx file with IP addresses in the first column")
	cmd.Flags().BoolVar(&cfg.SkipHeader, "skip-header", cfg.SkipHeader, "Treat the first row as a header")

	// Reputation service flags
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", "", "AbuseIPDB API key (default: $"+config.EnvAPIKey+")")
	cmd.Flags().StringVar(&cfg.APIKeyFile, "api-key-file", "", "File containing the AbuseIPDB API key")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Reputation check endpoint")
	cmd.Flags().StringVar(&maxAgeStr, "max-age", "", "Only count reports newer than this (e.g., 30d, 12w; max 365d)")
	cmd.Flags().BoolVar(&cfg.IncludeReports, "include-reports", cfg.IncludeReports, "Request the report list so reports can be counted")

	// Output flags
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory")
	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format (xlsx, json, text, all)")

	// Operational flags
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: .ipspectre.yaml)")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Dry run mode (don't write output)")

	return cmd
}

// runCheck executes the enrichment workflow
func runCheck(ctx context.Context, cfg *config.Config, out io.Writer) error {
	startTime := time.Now()

	apiKey, keySource, err := config.ResolveAPIKey(cfg)
	if err != nil {
		return err
	}

	slog.Debug("starting check",
		slog.String("input", cfg.InputFile),
		slog.String("api_key", config.MaskKey(apiKey)),
		slog.String("api_key_source", keySource),
		slog.String("base_url", cfg.BaseURL),
		slog.Int("max_age_days", cfg.MaxAgeDays()),
		slog.String("format", cfg.Format),
	)

	// 1. Load input
	fmt.Fprintln(out, "📄 Loading input...")
	ips, err := loader.Load(cfg.InputFile, cfg.SkipHeader)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}
	fmt.Fprintf(out, "✓ Loaded %s IP addresses from %s\n", humanize.Comma(int64(len(ips))), cfg.InputFile)

	// 2. Look up and accumulate rows
	fmt.Fprintln(out, "🔍 Checking reputation...")
	client := reputation.NewClient(reputation.Options{
		BaseURL:        cfg.BaseURL,
		APIKey:         apiKey,
		MaxAgeDays:     cfg.MaxAgeDays(),
		IncludeReports: cfg.IncludeReports,
	})
	rows, summary, err := pipeline.New(client, pipeline.Options{Now: time.Now, Out: out}).Run(ctx, ips)
	if err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}
	fmt.Fprintf(out, "✓ Checked %s IPs: %s failed lookups, %s unparsed timestamps\n",
		humanize.Comma(int64(summary.Total)),
		humanize.Comma(int64(summary.Failed)),
		humanize.Comma(int64(summary.TimestampErrors)))

	// 3. Build report
	report := buildReport(cfg, rows, summary, startTime, time.Now())

	// 4. Write output
	if cfg.DryRun {
		fmt.Fprintln(out, "🏃 Dry run mode - skipping output")
	} else {
		fmt.Fprintln(out, "📝 Writing output...")
		paths, err := reporter.New(cfg).Generate(report)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, path := range paths {
			fmt.Fprintf(out, "✓ Output file '%s' created successfully.\n", path)
		}
	}

	fmt.Fprintf(out, "\n✅ Check complete in %s!\n", time.Since(startTime).Round(time.Second))
	return nil
}

// buildReport constructs the final report
func buildReport(
	cfg *config.Config,
	rows []models.Row,
	summary pipeline.Summary,
	startTime time.Time,
	generatedAt time.Time,
) *models.Report {
	return &models.Report{
		Tool:      "ipspectre",
		Version:   version,
		Timestamp: generatedAt.UTC().Format(time.RFC3339),
		Metadata: models.Metadata{
			GeneratedAt:   generatedAt,
			InputFile:     cfg.InputFile,
			TotalIPs:      summary.Total,
			FailedLookups: summary.Failed,
			Duration:      generatedAt.Sub(startTime).Round(time.Second).String(),
			Version:       version,
		},
		Rows: rows,
	}
}
