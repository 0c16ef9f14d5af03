package daemon

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	return gdb
}

func TestSeed(t *testing.T) {
	gdb := newTestDB(t)
	cfg := &config.Config{Admin: config.Admin{Username: "root", Password: "pw"}}

	require.NoError(t, seed(cfg, gdb))
	require.NoError(t, seed(cfg, gdb))

	local := auth.NewLocalProvider(gdb)

	n, err := local.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := local.Authenticate("root", "pw")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestSeedDefaults(t *testing.T) {
	gdb := newTestDB(t)

	require.NoError(t, seed(&config.Config{}, gdb))

	user, err := auth.NewLocalProvider(gdb).GetUserByUsername("admin")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.NotEmpty(t, user.Password)
}

func TestSessionStorage(t *testing.T) {
	assert.Nil(t, sessionStorage(&config.Config{DB: config.DB{GormEngine: config.GormEngineSQLite}}))
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		Title: "pushcast",
		DB:    config.DB{GormEngine: config.GormEngineSQLite, Path: ":memory:"},
		Webserver: config.Webserver{
			Domain:        "localhost:8080",
			Port:          8080,
			CheckAliveURI: "/checkalive",
		},
		Admin: config.Admin{Username: "admin", Password: "pw"},
	}

	d, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, d.webService.App)
}
