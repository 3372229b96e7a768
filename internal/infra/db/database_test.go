package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/config"
)

func TestNewConnection(t *testing.T) {
	t.Run("sqlite in memory", func(t *testing.T) {
		database, err := NewConnection(&config.DatabaseConfig{
			Driver: config.DriverSQLite,
			URL:    ":memory:",
		})
		require.NoError(t, err)
		defer database.Close()

		require.NoError(t, database.Migrate())
		assert.True(t, database.HealthCheck())
		assert.True(t, database.DB().Migrator().HasTable("investments"))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
