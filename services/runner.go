package services

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"

	"house-validator/models"
	"house-validator/storage"
	"house-validator/utils"
)

// Result bundles everything one validation run produced.
type Result struct {
	RunID     string
	Window    models.Window
	Snapshots int
	Static    *models.StaticReport
	Drift     *models.DriftReport
}

// Runner fetches one window of snapshots and runs both checks over it.
type Runner struct {
	source   storage.SnapshotSource
	static   *StaticValidator
	drift    *DriftValidator
	reporter *Reporter
	logger   *utils.Logger
}

// NewRunner wires a Runner. reporter may be nil when only the Result is wanted.
func NewRunner(source storage.SnapshotSource, groups models.FieldGroups, reporter *Reporter, logger *utils.Logger) *Runner {
	return &Runner{
		source:   source,
		static:   NewStaticValidator(groups.Static, logger),
		drift:    NewDriftValidator(groups.Drift, logger),
		reporter: reporter,
		logger:   logger,
	}
}

// Run fetches the window once and validates it. Both passes read the same
// snapshot slice and only write their own reports, so they run side by side.
func (r *Runner) Run(ctx context.Context, window models.Window) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Window: window}
	log := r.logger.With("run_id", res.RunID)

	log.Info("Validating snapshots from %s to %s",
		window.From.Format("2006-01-02 15:04:05 MST"), window.To.Format("2006-01-02 15:04:05 MST"))

	snapshots, err := r.source.Fetch(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshots: %w", err)
	}
	res.Snapshots = len(snapshots)
	log.Info("Fetched %d snapshots", res.Snapshots)

	pool := pond.NewPool(2)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	group.Submit(
		func() { res.Static = r.static.Validate(snapshots) },
		func() { res.Drift = r.drift.Validate(snapshots) },
	)
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("validate snapshots: %w", err)
	}

	log.Info("Static check: %d findings, invalid %s (%s), %d listings, %d extra tuples",
		len(res.Static.Findings), res.Static.Ratio, percent(res.Static.Ratio),
		res.Static.Listings, res.Static.ExtraTuples)
	log.Info("Drift check: %d findings, invalid %s (%s)",
		len(res.Drift.Findings), res.Drift.Ratio, percent(res.Drift.Ratio))

	if r.reporter != nil {
		r.reporter.PrintStatic(res.Static)
		r.reporter.PrintDrift(res.Drift)
	}
	return res, nil
}

func percent(r models.Ratio) string {
	f, ok := r.Fraction()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", f*100)
}
