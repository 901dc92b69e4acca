package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitRoundTrip(t *testing.T) {
	assert := assert.New(t)

	pos := MkLit(7, false)
	neg := MkLit(7, true)

	assert.Equal(SolvableId(7), pos.Solvable())
	assert.Equal(SolvableId(7), neg.Solvable())
	assert.False(pos.Negative())
	assert.True(neg.Negative())

	assert.Equal(neg, pos.Not())
	assert.Equal(pos, neg.Not())
	assert.Equal(pos, pos.Not().Not())
}

func TestLitIndexesDensely(t *testing.T) {
	assert.Equal(t, Lit(0), MkLit(0, false))
	assert.Equal(t, Lit(1), MkLit(0, true))
	assert.Equal(t, Lit(2), MkLit(1, false))
	assert.Equal(t, Lit(3), MkLit(1, true))
}

func TestLitString(t *testing.T) {
	assert.Equal(t, "+3", MkLit(3, false).String())
	assert.Equal(t, "-3", MkLit(3, true).String())
	assert.Equal(t, "<none>", LitNone.String())
}
