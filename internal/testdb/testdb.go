// Package testdb opens a migrated in-memory database for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, gdb.AutoMigrate(models.All()...), "failed to migrate tables")

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
