package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/harvest"
	"github.com/fwojciec/docharvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunService_CreateAndFinishRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	id, err := s.CreateRun(ctx, "testdocs")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	summary := &harvest.Summary{
		Target:       "testdocs",
		Discovered:   10,
		Fetched:      8,
		FetchSkipped: 1,
		FetchFailed:  1,
		Converted:    8,
		Documents:    9,
	}
	require.NoError(t, s.FinishRun(ctx, id, summary, nil))

	run, err := s.FindRunByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "testdocs", run.Target)
	assert.Equal(t, 10, run.Summary.Discovered)
	assert.Equal(t, 8, run.Summary.Fetched)
	assert.Equal(t, 1, run.Summary.FetchSkipped)
	assert.Equal(t, 1, run.Summary.FetchFailed)
	assert.Equal(t, 9, run.Summary.Documents)
	assert.Empty(t, run.Error)
	assert.False(t, run.StartedAt.IsZero())
	assert.False(t, run.FinishedAt.IsZero())
}

func TestRunService_FinishRun_RecordsError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	id, err := s.CreateRun(ctx, "testdocs")
	require.NoError(t, err)

	runErr := docharvest.Errorf(docharvest.EUNAVAILABLE, "navigation timeout")
	require.NoError(t, s.FinishRun(ctx, id, &harvest.Summary{Target: "testdocs"}, runErr))

	run, err := s.FindRunByID(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, run.Error, "navigation timeout")
}

func TestRunService_FinishRun_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	err := s.FinishRun(ctx, "nope", &harvest.Summary{}, nil)
	assert.Equal(t, docharvest.ENOTFOUND, docharvest.ErrorCode(err))
}

func TestRunService_FindRunByID_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	_, err := s.FindRunByID(ctx, "nope")
	assert.Equal(t, docharvest.ENOTFOUND, docharvest.ErrorCode(err))
}

func TestRunService_RecordFetches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	id, err := s.CreateRun(ctx, "testdocs")
	require.NoError(t, err)

	records := []docharvest.FetchRecord{
		{Filename: "01-02-guide", SourceURL: "https://example.com/docs/guide", Title: "Guide", ByteSize: 2048, ContentHash: "bbb"},
		{Filename: "01-01-intro", SourceURL: "https://example.com/docs/intro", Title: "Intro", ByteSize: 1024, ContentHash: "aaa", Skipped: true},
	}
	require.NoError(t, s.RecordFetches(ctx, id, records))

	got, err := s.FindFetchRecords(ctx, id)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "01-01-intro", got[0].Filename)
	assert.True(t, got[0].Skipped)
	assert.Equal(t, "01-02-guide", got[1].Filename)
	assert.Equal(t, "bbb", got[1].ContentHash)
}

func TestRunService_RecordFetches_ReplacesOnRerun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sqlite.NewRunService(mustOpenDB(t))

	id, err := s.CreateRun(ctx, "testdocs")
	require.NoError(t, err)

	record := docharvest.FetchRecord{Filename: "01-01-intro", SourceURL: "https://example.com/docs/intro", ContentHash: "aaa"}
	require.NoError(t, s.RecordFetches(ctx, id, []docharvest.FetchRecord{record}))

	record.ContentHash = "bbb"
	require.NoError(t, s.RecordFetches(ctx, id, []docharvest.FetchRecord{record}))

	got, err := s.FindFetchRecords(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bbb", got[0].ContentHash)
}
