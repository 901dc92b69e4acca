package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAllocAndGet(t *testing.T) {
	assert := assert.New(t)

	var a arena[RuleId, string]
	assert.Equal(0, a.len())

	first := a.alloc("first")
	second := a.alloc("second")
	assert.Equal(RuleId(0), first)
	assert.Equal(RuleId(1), second)
	assert.Equal(2, a.len())

	assert.Equal("first", *a.get(first))
	assert.Equal("second", *a.get(second))

	*a.get(first) = "replaced"
	assert.Equal("replaced", *a.get(first))
}

func TestArenaValid(t *testing.T) {
	var a arena[SolvableId, int]
	assert.False(t, a.valid(0))
	a.alloc(7)
	assert.True(t, a.valid(0))
	assert.False(t, a.valid(1))
}

func TestArenaGetPanicsOutOfRange(t *testing.T) {
	var a arena[RuleId, int]
	a.alloc(1)
	assert.Panics(t, func() {
		a.get(RuleId(5))
	})
}

func TestArenaClear(t *testing.T) {
	var a arena[NameId, string]
	a.alloc("x")
	a.alloc("y")
	a.clear()
	assert.Equal(t, 0, a.len())
	assert.False(t, a.valid(0))

	id := a.alloc("z")
	assert.Equal(t, NameId(0), id)
	assert.Equal(t, "z", *a.get(id))
}
