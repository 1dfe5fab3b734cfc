package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"house-validator/models"
	"house-validator/utils"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// SQLSource reads snapshots from a SQL table with one row per observation.
type SQLSource struct {
	db     *sql.DB
	driver string
	cols   Columns
	groups models.FieldGroups
	logger *utils.Logger
}

// OpenSQLSource opens a connection with the given driver, waits for the
// database to answer a ping, and returns a ready-to-use SQLSource.
func OpenSQLSource(ctx context.Context, driver, dsn string, cols Columns, groups models.FieldGroups,
	retry *utils.RetryConfig, logger *utils.Logger) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}

	if err := retry.Do(ctx, driver+" ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", driver, err)
	}

	src, err := NewSQLSource(db, driver, cols, groups, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return src, nil
}

// NewSQLSource wraps an already opened database.
func NewSQLSource(db *sql.DB, driver string, cols Columns, groups models.FieldGroups, logger *utils.Logger) (*SQLSource, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("sql source: unsupported driver %q", driver)
	}
	if err := groups.Validate(); err != nil {
		return nil, fmt.Errorf("sql source: %w", err)
	}
	return &SQLSource{db: db, driver: driver, cols: cols, groups: groups, logger: logger}, nil
}

// query builds the projection from the configured field groups.
func (s *SQLSource) query() string {
	q := pq.QuoteIdentifier
	projection := []string{q(s.cols.ListingID), q(s.cols.ObservedAt), q(s.cols.RoughAddress)}
	for _, f := range s.groups.Static {
		projection = append(projection, q(f))
	}
	for _, f := range s.groups.Drift {
		projection = append(projection, q(f))
	}

	return fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s >= %s AND %s <= %s AND %s IS NOT NULL
		ORDER BY %s
	`,
		strings.Join(projection, ", "),
		q(s.cols.Table),
		s.instant(q(s.cols.ObservedAt)), s.instant(s.placeholder(1)),
		s.instant(q(s.cols.ObservedAt)), s.instant(s.placeholder(2)),
		q(s.cols.RoughAddress),
		q(s.cols.ListingID),
	)
}

// instant wraps a timestamp expression so it compares chronologically.
// SQLite stores timestamps as text in whatever layout the writer used
// ("2024-02-29 16:00:00", "2024-02-29 16:00:00+00:00", ...), so text
// comparison is not enough there.
func (s *SQLSource) instant(expr string) string {
	if s.driver == DriverSQLite {
		return "julianday(" + expr + ")"
	}
	return expr
}

func (s *SQLSource) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Fetch retrieves every snapshot in the window that has a rough address.
func (s *SQLSource) Fetch(ctx context.Context, window models.Window) ([]*models.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, s.query(), window.From.UTC(), window.To.UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: fetch snapshots: %w", s.driver, err)
	}
	defer rows.Close()

	var (
		id       string
		observed sql.NullTime
		rough    sql.NullString
		static   = make([]sql.NullString, len(s.groups.Static))
		drift    = make([]sql.NullFloat64, len(s.groups.Drift))
	)
	dest := make([]any, 0, 3+len(static)+len(drift))
	dest = append(dest, &id, &observed, &rough)
	for i := range static {
		dest = append(dest, &static[i])
	}
	for i := range drift {
		dest = append(dest, &drift[i])
	}

	var snapshots []*models.Snapshot
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: scan snapshot: %w", s.driver, err)
		}

		snap := &models.Snapshot{
			ListingID:    id,
			ObservedAt:   observed.Time,
			RoughAddress: rough.String,
			Categorical:  make(map[string]*string, len(static)),
			Numeric:      make(map[string]*float64, len(drift)),
		}
		for i, f := range s.groups.Static {
			if static[i].Valid {
				v := static[i].String
				snap.Categorical[f] = &v
			} else {
				snap.Categorical[f] = nil
			}
		}
		for i, f := range s.groups.Drift {
			if v := drift[i].Float64; drift[i].Valid && !math.IsNaN(v) && !math.IsInf(v, 0) {
				snap.Numeric[f] = &v
			} else {
				snap.Numeric[f] = nil
			}
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate snapshots: %w", s.driver, err)
	}

	s.logger.Debug("[%s] fetched %d snapshots between %s and %s",
		s.driver, len(snapshots), window.From.Format("2006-01-02 15:04:05"), window.To.Format("2006-01-02 15:04:05"))
	return snapshots, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}
