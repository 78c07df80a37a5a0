// Package mirrortest opens throwaway mirrors for tests of the packages built on top of it.
package mirrortest

import (
	"chat-mirror/infrastructure/mirror"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// New opens a migrated sqlite mirror in the test temp dir.
func New(t testing.TB, log *slog.Logger) *mirror.Mirror {
	t.Helper()
	m, err := mirror.Open(mirror.DriverSqlite, mirror.SqliteDSN(filepath.Join(t.TempDir(), "mirror.db")), log)
	require.NoError(t, err)
	require.NoError(t, m.Migrate())
	t.Cleanup(func() { _ = m.Close() })
	return m
}
