package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decide marks every listed solvable installed at the root level.
func decide(t *testing.T, s *Solver, ids ...SolvableId) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, s.decisions.set(id, true, RuleNone))
	}
}

func transactionSolver(t *testing.T, pool *Pool) *Solver {
	t.Helper()
	s, err := New(pool)
	require.NoError(t, err)
	s.decisions.reset(pool.SolvableCount())
	return s
}

func TestTransactionOrdersDependenciesFirst(t *testing.T) {
	pool := buildPool([]testPkg{
		{Name: "a", Version: 1, Depends: []VersionSet{anyOf("b")}},
		{Name: "b", Version: 1, Depends: []VersionSet{anyOf("c")}},
		{Name: "c", Version: 1},
	})
	s := transactionSolver(t, pool)
	decide(t, s, 0, 1, 2)

	tx := s.buildTransaction()
	assert.Equal(t, []SolvableId{2, 1, 0}, tx.Solvables())
	for _, st := range tx.Steps {
		assert.Equal(t, StepInstall, st.Kind)
	}
}

func TestTransactionBreaksCycles(t *testing.T) {
	pool := buildPool([]testPkg{
		{Name: "a", Version: 1, Depends: []VersionSet{anyOf("b")}},
		{Name: "b", Version: 1, Depends: []VersionSet{anyOf("a")}},
		{Name: "c", Version: 1, Depends: []VersionSet{anyOf("a")}},
	})
	s := transactionSolver(t, pool)
	decide(t, s, 0, 1, 2)

	// a and b depend on each other; the tie breaks at the smallest id
	tx := s.buildTransaction()
	assert.Equal(t, []SolvableId{0, 1, 2}, tx.Solvables())
}

func TestTransactionIgnoresUninstalledProviders(t *testing.T) {
	pool := buildPool([]testPkg{
		{Name: "a", Version: 1, Depends: []VersionSet{anyOf("x")}},
		{Name: "x", Version: 1},
		{Name: "x", Version: 2},
	})
	s := transactionSolver(t, pool)
	require.NoError(t, s.decisions.set(1, false, RuleNone))
	decide(t, s, 0, 2)

	tx := s.buildTransaction()
	assert.Equal(t, []SolvableId{2, 0}, tx.Solvables())
}

func TestTransactionEmpty(t *testing.T) {
	pool := buildPool([]testPkg{{Name: "a", Version: 1}})
	s := transactionSolver(t, pool)

	tx := s.buildTransaction()
	assert.Empty(t, tx.Steps)
	assert.Empty(t, tx.Solvables())
}

func TestStepKindString(t *testing.T) {
	assert.Equal(t, "install", StepInstall.String())
}
