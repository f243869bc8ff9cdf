package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "performance_backend/internals/databases"
	model "performance_backend/internals/features/performances/model"
)

// openRaw opens a sqlite database without migrating it.
func openRaw(t *testing.T) (*PerformanceRepository, func(sql string, args ...any)) {
	t.Helper()
	backend := database.NewSQLiteBackend(filepath.Join(t.TempDir(), "legacy.db"))
	db, err := database.ConnectDB(backend)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	exec := func(sql string, args ...any) {
		t.Helper()
		require.NoError(t, db.Exec(sql, args...).Error)
	}
	return NewPerformanceRepository(db, backend), exec
}

func TestMigrate_FreshDatabase(t *testing.T) {
	repo, _ := openRaw(t)
	ctx := context.Background()

	require.NoError(t, repo.Migrate(ctx))
	// idempotent
	require.NoError(t, repo.Migrate(ctx))

	m := repo.db.Migrator()
	for _, col := range []string{model.ColID, model.ColDate, model.ColStatus, model.ColApprovalStatus, model.ColRejectionReason} {
		assert.True(t, m.HasColumn(&model.PerformanceModel{}, col), col)
	}
}

func TestMigrate_AddsApprovalColumnsToLegacyTable(t *testing.T) {
	repo, exec := openRaw(t)
	ctx := context.Background()

	exec(`CREATE TABLE performances (
		"ID" TEXT, "Location" TEXT, "Category" TEXT, "Title" TEXT, "Date" TEXT,
		"Venue" TEXT, "TeamSetup" TEXT, "Notes" TEXT, "Status" TEXT
	)`)
	exec(`INSERT INTO performances ("ID", "Title", "Date", "Status") VALUES ('7', 'Gala', '2025-11-06 (Thu)', 'Scheduled')`)
	exec(`INSERT INTO performances ("ID", "Title", "Date", "Status") VALUES ('8', 'Matinee', '2025-11-07', NULL)`)

	require.NoError(t, repo.Migrate(ctx))

	got, err := repo.FindByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Gala", *got.Title)
	assert.Equal(t, "2025-11-06 (Thu)", got.DateValue())
	assert.Equal(t, model.ApprovalUnreviewed, got.Approval())
	require.NotNil(t, got.ApprovalStatus)
	assert.Equal(t, string(model.ApprovalUnreviewed), *got.ApprovalStatus)
	assert.Nil(t, got.RejectionReason)

	got, err = repo.FindByID(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, model.LifecycleScheduled, got.Lifecycle())
}

func TestMigrate_NormalizesLegacyApprovalLabels(t *testing.T) {
	repo, exec := openRaw(t)
	ctx := context.Background()

	exec(`CREATE TABLE performances (
		"ID" TEXT PRIMARY KEY, "Location" TEXT, "Category" TEXT, "Title" TEXT, "Date" TEXT,
		"Venue" TEXT, "TeamSetup" TEXT, "Notes" TEXT, "Status" TEXT,
		"ApprovalStatus" TEXT DEFAULT '미승인', "RejectionReason" TEXT
	)`)
	exec(`INSERT INTO performances ("ID", "Date", "ApprovalStatus", "RejectionReason") VALUES ('1', '2025-11-06', '승인', 'stale')`)
	exec(`INSERT INTO performances ("ID", "Date", "ApprovalStatus", "RejectionReason") VALUES ('2', '2025-11-06', '반려', 'no stage')`)
	exec(`INSERT INTO performances ("ID", "Date") VALUES ('3', '2025-11-06')`)

	require.NoError(t, repo.Migrate(ctx))

	one, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalApproved), *one.ApprovalStatus)
	assert.Nil(t, one.RejectionReason)

	two, err := repo.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalRejected), *two.ApprovalStatus)
	require.NotNil(t, two.RejectionReason)
	assert.Equal(t, "no stage", *two.RejectionReason)

	three, err := repo.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, string(model.ApprovalUnreviewed), *three.ApprovalStatus)
}

func TestMigrate_LegacyTableWithoutKeyGetsUniqueID(t *testing.T) {
	repo, exec := openRaw(t)
	ctx := context.Background()

	exec(`CREATE TABLE performances (
		"ID" TEXT, "Location" TEXT, "Category" TEXT, "Title" TEXT, "Date" TEXT,
		"Venue" TEXT, "TeamSetup" TEXT, "Notes" TEXT, "Status" TEXT
	)`)
	exec(`INSERT INTO performances ("ID", "Date") VALUES ('1', '2025-11-06')`)

	require.NoError(t, repo.Migrate(ctx))
	// idempotent
	require.NoError(t, repo.Migrate(ctx))

	err := repo.Insert(ctx, perf("1", "2025-12-01", "Scheduled"))
	require.ErrorIs(t, err, ErrDuplicateID)

	all, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, all)

	require.NoError(t, repo.Insert(ctx, perf("2", "2025-12-01", "Scheduled")))
}

func TestMigrate_FailsOnDuplicateLegacyIDs(t *testing.T) {
	repo, exec := openRaw(t)

	exec(`CREATE TABLE performances (
		"ID" TEXT, "Location" TEXT, "Category" TEXT, "Title" TEXT, "Date" TEXT,
		"Venue" TEXT, "TeamSetup" TEXT, "Notes" TEXT, "Status" TEXT
	)`)
	exec(`INSERT INTO performances ("ID", "Date") VALUES ('4', '2025-11-06'), ('4', '2025-11-07'), ('5', '2025-11-08')`)

	err := repo.Migrate(context.Background())
	require.ErrorIs(t, err, ErrDuplicateIDsInTable)
	assert.Contains(t, err.Error(), "4")
	assert.NotContains(t, err.Error(), "5")
}
