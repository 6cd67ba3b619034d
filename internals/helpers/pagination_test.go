package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "classes.class_created_at",
		"price":      "classes.class_price",
	}

	t.Run("columna de la whitelist", func(t *testing.T) {
		p := Params{SortBy: "price", SortOrder: "asc"}
		clause, err := p.SafeOrderClause(allowed, "created_at")
		require.NoError(t, err)
		assert.Equal(t, "classes.class_price ASC", clause)
	})

	t.Run("columna desconocida cae al default, nunca al input crudo", func(t *testing.T) {
		p := Params{SortBy: "user_password; DROP TABLE users", SortOrder: "desc"}
		clause, err := p.SafeOrderClause(allowed, "created_at")
		require.NoError(t, err)
		assert.Equal(t, "classes.class_created_at DESC", clause)
	})
}

func TestBuildMeta(t *testing.T) {
	p := Params{Page: 2, PerPage: 25}
	m := BuildMeta(60, p)
	assert.Equal(t, int64(60), m.Total)
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	m = BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasNext)
	assert.False(t, m.HasPrev)
}
