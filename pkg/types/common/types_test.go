package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

func TestNewID_Unique(t *testing.T) {
	t.Parallel()

	a := common.NewID()
	b := common.NewID()
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
	assert.Len(t, a.String(), 36)
}

func TestScopeID_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, common.ScopeID("").IsZero())
	assert.False(t, common.ScopeID("warehouse-1").IsZero())
}

func TestPagination_Normalize(t *testing.T) {
	t.Parallel()

	p := common.Pagination{Limit: 0, Offset: -3}
	p.Normalize()
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = common.Pagination{Limit: 1000, Offset: 10}
	p.Normalize()
	assert.Equal(t, 200, p.Limit)
	assert.Equal(t, 10, p.Offset)
}
