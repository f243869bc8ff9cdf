package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "performance_backend/internals/databases"
	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
	"performance_backend/internals/middlewares"
	routes "performance_backend/internals/route"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "performances", root.Use)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])

	mig, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	f := mig.Flags().Lookup("timeout")
	require.NotNil(t, f)
	assert.Equal(t, "30s", f.DefValue)
}

func TestMigrateCommand_CreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("RENDER", "1")

	root := NewRootCommand()
	root.SetArgs([]string{"migrate", "--timeout", "10s"})
	root.SetOut(io.Discard)
	require.NoError(t, root.ExecuteContext(context.Background()))

	db, err := database.ConnectDB(database.NewSQLiteBackend(path))
	require.NoError(t, err)
	defer database.Close(db)
	assert.True(t, db.Migrator().HasTable("performances"))
}

func TestNewApp_Wiring(t *testing.T) {
	backend := database.NewSQLiteBackend(filepath.Join(t.TempDir(), "app.db"))
	db, err := database.ConnectDB(backend)
	require.NoError(t, err)
	defer database.Close(db)

	repo := repository.NewPerformanceRepository(db, backend)
	require.NoError(t, repo.Migrate(context.Background()))

	app := NewApp(routes.Deps{
		DB:      db,
		Backend: backend.Name(),
		Repo:    repo,
		Svc:     service.NewPerformanceService(time.UTC, nil),
	}, middlewares.Options{AllowOrigins: "*", Timezone: "UTC", RequestTimeout: time.Second})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"backend":"sqlite"`)

	req := httptest.NewRequest(http.MethodPost, "/api/performances", strings.NewReader(`{"id":"1","date":"2025-11-06"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/performances?mode=all", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
