package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/marketlens/stockcompare/internal/chart"
	"github.com/marketlens/stockcompare/internal/compare"
	"github.com/marketlens/stockcompare/internal/config"
	"github.com/marketlens/stockcompare/internal/datasource"
	"github.com/marketlens/stockcompare/internal/logger"
	"github.com/marketlens/stockcompare/internal/types"
)

// buildConfig assembles the run configuration from an optional YAML file and
// the CLI flags. Explicitly set flags win over file values.
func buildConfig(cmd *cli.Command) (config.ComparisonConfig, error) {
	var cfg config.ComparisonConfig

	if configPath := cmd.String("config"); configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.ComparisonConfig{}, err
		}

		cfg = loaded
	}

	if cmd.IsSet("processed") || cfg.ProcessedFile == "" {
		cfg.ProcessedFile = cmd.String("processed")
	}

	if cmd.IsSet("unprocessed") || cfg.UnprocessedFile == "" {
		cfg.UnprocessedFile = cmd.String("unprocessed")
	}

	if cmd.IsSet("code") || cfg.StockCode == 0 {
		cfg.StockCode = int(cmd.Int("code"))
	}

	if cmd.IsSet("period") || cfg.Period == "" {
		period, err := types.ParsePeriod(cmd.String("period"))
		if err != nil {
			return config.ComparisonConfig{}, err
		}

		cfg.Period = period
	}

	if cmd.IsSet("output") {
		cfg.OutputFile = cmd.String("output")
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return config.ComparisonConfig{}, err
	}

	return cfg, nil
}

// loadRecords creates a data source for one dataset file and reads every row.
func loadRecords(path string, appLogger *logger.Logger) ([]types.PriceRecord, error) {
	ds, err := datasource.NewDataSource(appLogger)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.Initialize(path); err != nil {
		return nil, err
	}

	return ds.ReadRecords(optional.None[int](), optional.None[time.Time](), optional.None[time.Time]())
}

// compareAction is the core logic executed by the CLI command.
// It loads both datasets, runs the filter/tag/merge pipeline, and writes the
// chart specification.
func compareAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting comparison run",
		zap.Int("stock_code", cfg.StockCode),
		zap.String("period", string(cfg.Period)),
		zap.String("processed", cfg.ProcessedFile),
		zap.String("unprocessed", cfg.UnprocessedFile))

	unprocessed, err := loadRecords(cfg.UnprocessedFile, appLogger.Named("datasource"))
	if err != nil {
		return fmt.Errorf("failed to load unprocessed dataset: %w", err)
	}

	processed, err := loadRecords(cfg.ProcessedFile, appLogger.Named("datasource"))
	if err != nil {
		return fmt.Errorf("failed to load processed dataset: %w", err)
	}

	pipeline := compare.NewPipeline(appLogger.Named("compare"))

	merged, err := pipeline.Run(unprocessed, processed, cfg.StockCode)
	if err != nil {
		return fmt.Errorf("comparison pipeline failed: %w", err)
	}

	spec := chart.NewComparisonSpec(merged, cfg.StockCode, cfg.Period)

	writer := chart.NewWriter(appLogger.Named("chart"))
	if err := writer.Write(spec, cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to write chart specification: %w", err)
	}

	return nil
}

// schemaAction prints the JSON schema of the YAML run configuration.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.ComparisonConfig{}

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	fmt.Println(schemaJSON)

	return nil
}

// newCommand defines the CLI application.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare close prices before and after data cleaning and emit a chart specification",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "processed",
				Aliases: []string{"p"},
				Usage:   "Path to the post-cleaning CSV dataset",
			},
			&cli.StringFlag{
				Name:    "unprocessed",
				Aliases: []string{"u"},
				Usage:   "Path to the pre-cleaning CSV dataset",
			},
			&cli.IntFlag{
				Name:    "code",
				Aliases: []string{"c"},
				Usage:   "Stock code to compare",
				Value:   920225,
			},
			&cli.StringFlag{
				Name:  "period",
				Usage: fmt.Sprintf("Bar interval of the source datasets (%s or %s)", types.PeriodWeekly, types.PeriodDaily),
				Value: string(types.PeriodWeekly),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the emitted chart specification. Defaults to stock_<code>_comparison_chart.json",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Optional YAML config file; explicitly set flags override it",
			},
		},
		Action: compareAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the YAML run configuration",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	// Run the CLI application
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
