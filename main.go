package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"house-validator/config"
	"house-validator/models"
	"house-validator/services"
	"house-validator/storage"
	"house-validator/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("house-validator", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	from := flags.StringP("from", "f", "", "from date, format: YYYYMMDD (required)")
	to := flags.StringP("to", "t", "", "to date, format: YYYYMMDD (required)")
	source := flags.String("source", "", "snapshot source: postgres, sqlite3 or csv (overrides SOURCE_DRIVER)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	if *source != "" {
		cfg.SourceDriver = *source
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	window, err := services.NewWindow(*from, *to, loc)
	if err != nil {
		logger.Error("Invalid arguments: %v", err)
		if errors.Is(err, services.ErrMissingDate) {
			fmt.Fprintln(stderr, flags.FlagUsages())
		}
		return 2
	}

	groups, err := config.LoadFieldGroups(cfg.FieldGroupsFile)
	if err != nil {
		logger.Error("Failed to load field groups: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, cfg, groups, loc, logger)
	if err != nil {
		logger.Error("Failed to open snapshot source: %v", err)
		return 1
	}
	defer src.Close()

	runner := services.NewRunner(src, groups, services.NewReporter(stdout), logger)
	if _, err := runner.Run(ctx, window); err != nil {
		logger.Error("Validation failed: %v", err)
		return 1
	}
	return 0
}

func openSource(ctx context.Context, cfg *config.Config, groups models.FieldGroups,
	loc *time.Location, logger *utils.Logger) (storage.SnapshotSource, error) {
	cols := storage.Columns{
		Table:        cfg.SnapshotTable,
		ListingID:    cfg.ListingIDColumn,
		ObservedAt:   cfg.ObservedAtColumn,
		RoughAddress: cfg.RoughAddressColumn,
	}
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.RetryBaseDelay(),
		Logger:      logger,
	}

	switch cfg.SourceDriver {
	case storage.DriverPostgres:
		return storage.OpenSQLSource(ctx, storage.DriverPostgres, cfg.DSN(), cols, groups, retry, logger)
	case storage.DriverSQLite:
		return storage.OpenSQLSource(ctx, storage.DriverSQLite, "file:"+cfg.SQLitePath+"?mode=ro", cols, groups, retry, logger)
	case "csv":
		return storage.NewCSVSource(cfg.CSVInputPath, cols, groups, loc, logger)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.SourceDriver)
	}
}
