package metrics

import (
	"context"
	"database/sql"
	"time"
)

// ImportMetric records metadata for a single ingredient import: either a
// batch of free-text lines or a clipped recipe.
type ImportMetric struct {
	Source       string
	LinesTotal   int
	LinesParsed  int
	UnknownUnits int
	LatencyMS    int64
	Timestamp    time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m ImportMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO import_metrics (source, lines_total, lines_parsed, unknown_units, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Source, m.LinesTotal, m.LinesParsed, m.UnknownUnits, m.LatencyMS, ts)
	return err
}

// DailyUsage represents import totals for a single day.
type DailyUsage struct {
	Date         string
	Imports      int
	LinesTotal   int
	LinesParsed  int
	UnknownUnits int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT DATE(timestamp) AS day, COUNT(*),
		       SUM(lines_total), SUM(lines_parsed), SUM(unknown_units)
		FROM import_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var day sql.NullString
		var linesTotal, linesParsed, unknownUnits sql.NullInt64
		if err := rows.Scan(&day, &u.Imports, &linesTotal, &linesParsed, &unknownUnits); err != nil {
			return nil, err
		}
		if day.Valid {
			u.Date = day.String
		} else {
			u.Date = "Unknown"
		}
		u.LinesTotal = int(linesTotal.Int64)
		u.LinesParsed = int(linesParsed.Int64)
		u.UnknownUnits = int(unknownUnits.Int64)
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(context.Background(),
		`DELETE FROM import_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
