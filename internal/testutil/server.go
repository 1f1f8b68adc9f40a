// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/ryogami/kiryuu-go/internal/api"
	"github.com/ryogami/kiryuu-go/internal/config"
	"github.com/ryogami/kiryuu-go/internal/core"
	"github.com/ryogami/kiryuu-go/internal/source"
	"github.com/ryogami/kiryuu-go/internal/source/mocksource"
	"github.com/ryogami/kiryuu-go/internal/websocket"
)

// SetupTestApp builds a core.App backed by an in-memory database, with
// only the mock provider registered.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	hub := websocket.NewHub()
	go hub.Run()
	app := &core.App{
		Config:  cfg,
		DB:      db,
		WsHub:   hub,
		Version: "test",
	}

	t.Cleanup(func() {
		source.UnregisterAll()
	})

	source.Register(mocksource.New())
	return app
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	server := api.NewServer(app)
	return server, app.DB
}
