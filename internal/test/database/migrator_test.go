package database_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/database"
)

func TestMigrationFiles(t *testing.T) {
	names, err := database.MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	// Numeric prefixes make lexical order the application order.
	assert.True(t, sort.StringsAreSorted(names))
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".sql"), "unexpected file %s", name)
	}

	assert.Equal(t, []string{
		"001_create_orders.sql",
		"002_create_order_children.sql",
		"003_create_chat_messages.sql",
		"004_create_user_status.sql",
	}, names)
}
