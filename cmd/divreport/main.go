// Package main provides the CLI entry point for divreport.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/divreport-go/internal/config"
	"github.com/ukaji3/divreport-go/internal/logging"
	"github.com/ukaji3/divreport-go/internal/server"
	"github.com/ukaji3/divreport-go/pkg/divreport"
	"github.com/ukaji3/divreport-go/pkg/divreport/source"
	"github.com/ukaji3/divreport-go/pkg/divreport/writer"
)

var (
	configPath    string
	inputDir      string
	referenceFile string
	outputFile    string
	untagged      string
	strict        bool
	verbose       bool
	addr          string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "divreport",
		Short: "Map bag manifests to divisions and build the PL/SP/Summary report",
		Long: `divreport reads every .csv, .xls and .xlsx bag manifest in a directory,
tags rows as PL (file name contains "set1") or SP ("set2"), maps each
"To Office Name" to its division through the reference file, and writes
a workbook with PL Bags, SP Bags and Summary sheets.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runBatch,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&inputDir, "dir", "", "Directory holding the input and reference files (default: .)")
	flags.StringVar(&referenceFile, "reference", "", "Reference file name (default: \"division wis.xlsx\")")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file name (default: division_mapped_output.xlsx)")
	flags.StringVar(&untagged, "untagged", "", "Bag type for rows from untagged files: blank or unknown")
	flags.BoolVar(&strict, "strict", false, "Fail when an office has no matching division")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload and download web front-end",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: :8501)")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

// setup loads configuration, applies explicitly set flags, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Report.InputDir = inputDir
	}
	if flags.Changed("reference") {
		cfg.Report.ReferenceFile = referenceFile
	}
	if flags.Changed("output") {
		cfg.Report.OutputFile = outputFile
	}
	if flags.Changed("untagged") {
		cfg.Report.Untagged = untagged
	}
	if flags.Changed("strict") {
		cfg.Report.Strict = strict
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(cfg.Logging, verbose)
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger.Info("starting division-wise report generator", zap.String("dir", cfg.Report.InputDir))

	ref, err := divreport.LoadReferenceFile(cfg.ReferencePath())
	if err != nil {
		logger.Error("reference file not loaded", zap.Error(err))
		return err
	}
	logger.Info("loaded reference file", zap.String("file", ref.Name), zap.Int("offices", ref.Len()))

	opts := cfg.Options()
	opts.Logger = logger

	src := source.Dir{
		Path: cfg.Report.InputDir,
		Exclude: []string{
			filepath.Base(cfg.Report.ReferenceFile),
			filepath.Base(cfg.Report.OutputFile),
		},
	}

	report, err := divreport.Generate(ref, src, opts)
	if err != nil {
		logger.Error("report generation failed", zap.Error(err))
		return err
	}

	out := cfg.OutputPath()
	if err := writer.WriteFile(report, out); err != nil {
		logger.Error("failed to write output", zap.String("file", out), zap.Error(err))
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("output created",
		zap.String("file", out),
		zap.Strings("sheets", []string{writer.SheetPL, writer.SheetSP, writer.SheetSummary}),
		zap.Int("pl_rows", len(report.PL)),
		zap.Int("sp_rows", len(report.SP)),
		zap.Int("dropped_rows", report.Stats.DroppedRows))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errCh
}
