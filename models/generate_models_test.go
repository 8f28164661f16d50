package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUnmappedColumns(t *testing.T) {
	s, err := schema.Parse(&Blog{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	columns := []string{"id", "title", "body", "author", "created_at", "updated_at", "views", "legacy_slug"}
	assert.Equal(t, []string{"legacy_slug", "views"}, unmappedColumns(columns, s))

	assert.Empty(t, unmappedColumns([]string{"id", "title"}, s))
}
