package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetReadDB(t *testing.T) {
	// No replica configured: reads fall back to the primary, signalled by nil.
	require.Nil(t, GetReadDB())

	replica, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	readDB = replica
	t.Cleanup(func() { readDB = nil })

	assert.Same(t, replica, GetReadDB())
}
