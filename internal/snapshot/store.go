// Package snapshot persists the enriched record set in a local SQLite file
// so later runs skip the expensive archive parse. The snapshot is trusted
// as-is: there is no staleness check against the source archive.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// ErrNoSnapshot means no usable snapshot exists; callers fall back to a full
// re-parse of the raw archive.
var ErrNoSnapshot = errors.New("no usable snapshot")

const schema = `
CREATE TABLE IF NOT EXISTS storm_records (
	event_type      TEXT    NOT NULL,
	state           TEXT    NOT NULL,
	begin_date_raw  TEXT    NOT NULL,
	fatalities      INTEGER NOT NULL,
	injuries        INTEGER NOT NULL,
	prop_damage     REAL    NOT NULL,
	prop_damage_exp TEXT    NOT NULL,
	crop_damage     REAL    NOT NULL,
	crop_damage_exp TEXT    NOT NULL,
	prop_damage_usd REAL    NOT NULL,
	crop_damage_usd REAL    NOT NULL,
	begin_date      TEXT    NOT NULL,
	category        TEXT    NOT NULL,
	in_scope        INTEGER NOT NULL,
	processed_at    TEXT    NOT NULL
);`

const insertSQL = `
INSERT INTO storm_records (
	event_type, state, begin_date_raw, fatalities, injuries,
	prop_damage, prop_damage_exp, crop_damage, crop_damage_exp,
	prop_damage_usd, crop_damage_usd, begin_date, category, in_scope, processed_at
) VALUES (
	:event_type, :state, :begin_date_raw, :fatalities, :injuries,
	:prop_damage, :prop_damage_exp, :crop_damage, :crop_damage_exp,
	:prop_damage_usd, :crop_damage_usd, :begin_date, :category, :in_scope, :processed_at
)`

// insertBatchSize keeps the expanded multi-VALUES statement under SQLite's
// bound-parameter limit.
const insertBatchSize = 500

// recordRow is the flat SQLite representation of a StormRecord. Dates travel
// as RFC 3339 text; the missing-date sentinel is the empty string.
type recordRow struct {
	EventType     string  `db:"event_type"`
	State         string  `db:"state"`
	BeginDateRaw  string  `db:"begin_date_raw"`
	Fatalities    int     `db:"fatalities"`
	Injuries      int     `db:"injuries"`
	PropDamage    float64 `db:"prop_damage"`
	PropDamageExp string  `db:"prop_damage_exp"`
	CropDamage    float64 `db:"crop_damage"`
	CropDamageExp string  `db:"crop_damage_exp"`
	PropDamageUSD float64 `db:"prop_damage_usd"`
	CropDamageUSD float64 `db:"crop_damage_usd"`
	BeginDate     string  `db:"begin_date"`
	Category      string  `db:"category"`
	InScope       bool    `db:"in_scope"`
	ProcessedAt   string  `db:"processed_at"`
}

// Store reads and writes the snapshot database.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store for the snapshot file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the cached enriched record set. Missing file, unreadable
// database, or an empty snapshot all yield ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) ([]domain.StormRecord, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, ErrNoSnapshot
	}

	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	var rows []recordRow
	if err := db.SelectContext(ctx, &rows, "SELECT * FROM storm_records"); err != nil {
		s.logger.Warn("snapshot unreadable, falling back to re-parse", "path", s.path, "error", err)
		return nil, ErrNoSnapshot
	}
	if len(rows) == 0 {
		return nil, ErrNoSnapshot
	}

	records := make([]domain.StormRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}

	s.logger.Info("snapshot loaded", "path", s.path, "records", len(records))
	return records, nil
}

// Save replaces the snapshot contents with the given record set.
func (s *Store) Save(ctx context.Context, records []domain.StormRecord) error {
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create snapshot schema: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM storm_records"); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		batch := make([]recordRow, 0, end-start)
		for _, rec := range records[start:end] {
			batch = append(batch, toRow(rec))
		}
		if _, err := tx.NamedExecContext(ctx, insertSQL, batch); err != nil {
			return fmt.Errorf("insert snapshot batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	s.logger.Info("snapshot saved", "path", s.path, "records", len(records))
	return nil
}

func toRow(rec domain.StormRecord) recordRow {
	return recordRow{
		EventType:     rec.EventType,
		State:         rec.State,
		BeginDateRaw:  rec.BeginDateRaw,
		Fatalities:    rec.Fatalities,
		Injuries:      rec.Injuries,
		PropDamage:    rec.PropDamage,
		PropDamageExp: rec.PropDamageExp,
		CropDamage:    rec.CropDamage,
		CropDamageExp: rec.CropDamageExp,
		PropDamageUSD: rec.PropDamageUSD,
		CropDamageUSD: rec.CropDamageUSD,
		BeginDate:     formatTime(rec.BeginDate),
		Category:      string(rec.Category),
		InScope:       rec.InScope,
		ProcessedAt:   formatTime(rec.ProcessedAt),
	}
}

func (r recordRow) toRecord() domain.StormRecord {
	return domain.StormRecord{
		EventType:     r.EventType,
		State:         r.State,
		BeginDateRaw:  r.BeginDateRaw,
		Fatalities:    r.Fatalities,
		Injuries:      r.Injuries,
		PropDamage:    r.PropDamage,
		PropDamageExp: r.PropDamageExp,
		CropDamage:    r.CropDamage,
		CropDamageExp: r.CropDamageExp,
		PropDamageUSD: r.PropDamageUSD,
		CropDamageUSD: r.CropDamageUSD,
		BeginDate:     parseTime(r.BeginDate),
		Category:      domain.Category(r.Category),
		InScope:       r.InScope,
		ProcessedAt:   parseTime(r.ProcessedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
