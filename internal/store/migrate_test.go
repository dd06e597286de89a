package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	t.Parallel()

	ms, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	versions := make([]string, 0, len(ms))
	for _, m := range ms {
		assert.NotContains(t, m.version, ".sql")
		assert.NotContains(t, m.version, "/")
		assert.NotEmpty(t, m.sql, m.version)
		versions = append(versions, m.version)
	}
	assert.True(t, slices.IsSorted(versions), "migrations apply in version order")
	assert.Equal(t, "001_featured_deals", versions[0])
	assert.Contains(t, ms[0].sql, "CREATE TABLE IF NOT EXISTS featured_deals")
}
