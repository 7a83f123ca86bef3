package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahiyapatil/smart-financial-parser/internal/anomaly"
	"github.com/mahiyapatil/smart-financial-parser/internal/audit"
	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/ingest"
	"github.com/mahiyapatil/smart-financial-parser/internal/normalize"
	"github.com/mahiyapatil/smart-financial-parser/internal/report"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Normalize a CSV batch and flag anomalies",
		Long: `Process a messy transaction CSV: resolve dates, amounts, merchants and
categories, profile the batch, flag anomalous transactions, and print an
analysis report.

Examples:
  # Process and print the report
  finparse process transactions.csv

  # Also write the cleaned, annotated records
  finparse process transactions.csv -o clean.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringP("output", "o", "", "write annotated records to this CSV file")
	cmd.Flags().String("audit-log", "", "audit trail path (default from config)")
	cmd.Flags().Bool("no-report", false, "skip the terminal report")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	auditPath, _ := cmd.Flags().GetString("audit-log")
	noReport, _ := cmd.Flags().GetBool("no-report")
	if auditPath == "" {
		auditPath = viper.GetString("audit.path")
	}

	start := time.Now()

	trail, err := audit.NewLogger(auditPath)
	if err != nil {
		return err
	}
	defer func() { _ = trail.Close() }()

	f, err := os.Open(inputPath)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("failed to open %s", inputPath), err)
	}
	records, err := ingest.ReadRecords(f)
	_ = f.Close()
	if err != nil {
		return common.NewUserError(fmt.Sprintf("failed to read %s", inputPath), err)
	}

	logAudit(trail, audit.EventRunStarted, map[string]any{
		"input_file": inputPath,
		"rows":       len(records),
	})
	slog.Info("Loaded records", "file", filepath.Base(inputPath), "rows", len(records))

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Normalizing transactions..."),
	)

	pipeline := normalize.NewPipelineWithConfig(normalize.Config{
		Workers:     viper.GetInt("pipeline.workers"),
		FuzzyCutoff: viper.GetFloat64("merchant.fuzzy_cutoff"),
	})
	result := pipeline.Normalize(cmd.Context(), records, func() { _ = bar.Add(1) })
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	for _, failure := range result.Failures {
		// Row numbers shift by 2: one for the header, one for zero-basing.
		logAudit(trail, audit.EventRecordFailed, map[string]any{
			"row":   failure.Row + 2,
			"kind":  string(failure.Kind),
			"value": failure.Value,
		})
	}
	for _, t := range result.Transactions {
		logAudit(trail, audit.EventRecordNormalized, map[string]any{
			"merchant_raw":       t.MerchantName,
			"merchant_canonical": t.NormalizedMerchant,
			"amount":             t.Amount.StringFixed(2),
			"date":               t.Date.Format(time.RFC3339),
		})
	}

	profiler := anomaly.NewProfilerWithSplit(viper.GetFloat64("anomaly.scale_split"))
	profile := profiler.Profile(result.Transactions)
	logAudit(trail, audit.EventBatchProfiled, map[string]any{
		"samples": profile.SampleSize,
		"mean":    profile.Mean,
		"stdev":   profile.StdDev,
		"scale":   string(profile.Scale),
	})

	engine := anomaly.NewEngineWithConfig(anomaly.Config{
		ZMedium:             viper.GetFloat64("anomaly.zscore.medium"),
		ZHigh:               viper.GetFloat64("anomaly.zscore.high"),
		ZCritical:           viper.GetFloat64("anomaly.zscore.critical"),
		DuplicateTolerance:  viper.GetFloat64("anomaly.duplicate_tolerance"),
		VelocityWindow:      viper.GetDuration("anomaly.velocity.window"),
		VelocityThreshold:   decimal.NewFromFloat(viper.GetFloat64("anomaly.velocity.amount")),
		VelocityEpsilon:     viper.GetDuration("anomaly.velocity.epsilon"),
		DiversityMultiplier: viper.GetFloat64("anomaly.diversity_multiplier"),
	})
	engine.Annotate(result.Transactions, profile)

	if outputPath != "" && len(result.Transactions) > 0 {
		if err := writeOutput(outputPath, result); err != nil {
			return err
		}
		slog.Info("Saved annotated records", "file", outputPath, "count", len(result.Transactions))
	}

	elapsed := time.Since(start)
	logAudit(trail, audit.EventRunCompleted, map[string]any{
		"total_rows": len(records),
		"successful": len(result.Transactions),
		"failed":     len(result.Failures),
		"seconds":    elapsed.Seconds(),
	})
	slog.Info("Processing complete",
		"successful", len(result.Transactions),
		"failed", len(result.Failures),
		"elapsed", elapsed.Round(time.Millisecond))

	if !noReport {
		summary := report.Summarize(result.Transactions)
		formatter := report.NewFormatter()
		cmd.Println(formatter.Format(summary, result.Transactions, profile))
	}

	return nil
}

// logAudit records one audit event. A write failure must not abort the
// batch, but it is surfaced rather than swallowed.
func logAudit(trail *audit.Logger, eventType string, data map[string]any) {
	if err := trail.Log(eventType, data); err != nil {
		slog.Warn("audit write failed", "event", eventType, "error", err)
	}
}

func writeOutput(path string, result *normalize.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = out.Close() }()

	return ingest.WriteRecords(out, result.Transactions)
}
