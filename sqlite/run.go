package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/harvest"
	"github.com/google/uuid"
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string
	Target     string
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    harvest.Summary
	Error      string
}

// RunService records harvest runs and their per-page fetch records,
// so past runs can be inspected after the fact.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a run and returns its ID.
func (s *RunService) CreateRun(ctx context.Context, target string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, target, started_at) VALUES (?, ?, ?)
	`, id, target, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinishRun records a run's outcome. A run that was halted carries
// the error text alongside whatever counts its completed phases
// produced.
func (s *RunService) FinishRun(ctx context.Context, id string, summary *harvest.Summary, runErr error) error {
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			finished_at = ?,
			discovered = ?, fetched = ?, fetch_skipped = ?, fetch_failed = ?,
			converted = ?, convert_skipped = ?, convert_failed = ?,
			documents = ?, error = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339),
		summary.Discovered, summary.Fetched, summary.FetchSkipped, summary.FetchFailed,
		summary.Converted, summary.ConvertSkipped, summary.ConvertFailed,
		summary.Documents, errText, id)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return docharvest.Errorf(docharvest.ENOTFOUND, "run %q not found", id)
	}
	return nil
}

// RecordFetches stores the per-page fetch records of a run.
func (s *RunService) RecordFetches(ctx context.Context, runID string, records []docharvest.FetchRecord) error {
	for _, record := range records {
		skipped := 0
		if record.Skipped {
			skipped = 1
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO fetch_records
				(run_id, filename, source_url, title, byte_size, content_hash, skipped)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, record.Filename, record.SourceURL, record.Title,
			record.ByteSize, record.ContentHash, skipped)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindRunByID retrieves a run by ID.
// Returns ENOTFOUND if the run does not exist.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*Run, error) {
	var run Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, target, started_at, finished_at,
			discovered, fetched, fetch_skipped, fetch_failed,
			converted, convert_skipped, convert_failed, documents, error
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Target, &startedAt, &finishedAt,
		&run.Summary.Discovered, &run.Summary.Fetched, &run.Summary.FetchSkipped,
		&run.Summary.FetchFailed, &run.Summary.Converted, &run.Summary.ConvertSkipped,
		&run.Summary.ConvertFailed, &run.Summary.Documents, &run.Error)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	run.Summary.Target = run.Target
	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// FindFetchRecords retrieves a run's fetch records ordered by filename.
func (s *RunService) FindFetchRecords(ctx context.Context, runID string) ([]docharvest.FetchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT filename, source_url, title, byte_size, content_hash, skipped
		FROM fetch_records WHERE run_id = ? ORDER BY filename
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []docharvest.FetchRecord
	for rows.Next() {
		var record docharvest.FetchRecord
		var skipped int
		if err := rows.Scan(&record.Filename, &record.SourceURL, &record.Title,
			&record.ByteSize, &record.ContentHash, &skipped); err != nil {
			return nil, err
		}
		record.Skipped = skipped != 0
		records = append(records, record)
	}
	return records, rows.Err()
}
