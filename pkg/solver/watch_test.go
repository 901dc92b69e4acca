package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAssertions(t *testing.T) {
	assert := assert.New(t)

	pool := buildPool([]testPkg{
		{Name: "a", Version: 1},
		{Name: "b", Version: 1},
	})
	var jobs SolveJobs
	jobs.Install(pool.InternVersionSet(anyOf("a")))
	jobs.Install(pool.InternVersionSet(anyOf("b")))
	s := generateForTest(t, pool, jobs)

	conflict, err := s.applyAssertions()
	require.NoError(t, err)
	assert.Equal(RuleNone, conflict)
	assert.True(s.decisions.installed(0))
	assert.True(s.decisions.installed(1))
	assert.Equal(rootLevel, s.decisions.levelOf(0))
}

func TestApplyAssertionsReportsEmptyRule(t *testing.T) {
	pool := buildPool(nil)
	var jobs SolveJobs
	jobs.Install(pool.InternVersionSet(anyOf("ghost")))
	s := generateForTest(t, pool, jobs)

	conflict, err := s.applyAssertions()
	require.NoError(t, err)
	assert.Equal(t, RuleId(0), conflict)
}

func TestApplyAssertionsReportsContradiction(t *testing.T) {
	pool := buildPool([]testPkg{
		{Name: "a", Version: 1},
		{Name: "a", Version: 2},
	})
	var jobs SolveJobs
	jobs.Install(pool.InternVersionSet(exactly("a", 2)))
	jobs.Lock(mustFind(t, pool, "a", 1))
	s := generateForTest(t, pool, jobs)

	// the lock's exclusion of a-2 contradicts the already applied install
	conflict, err := s.applyAssertions()
	require.NoError(t, err)
	require.NotEqual(t, RuleNone, conflict)
	assert.Equal(t, RuleJobLock, s.rules.get(conflict).Kind)
}

func TestPropagateUnitChain(t *testing.T) {
	assert := assert.New(t)

	pool := buildPool([]testPkg{
		{Name: "c", Version: 1},
		{Name: "b", Version: 1, Depends: []VersionSet{anyOf("c")}},
		{Name: "a", Version: 1, Depends: []VersionSet{anyOf("b")}},
	})
	var jobs SolveJobs
	jobs.Install(pool.InternVersionSet(anyOf("a")))
	s := generateForTest(t, pool, jobs)

	conflict, err := s.applyAssertions()
	require.NoError(t, err)
	require.Equal(t, RuleNone, conflict)
	conflict, err = s.propagate()
	require.NoError(t, err)
	require.Equal(t, RuleNone, conflict)

	for id := SolvableId(0); id < 3; id++ {
		assert.True(s.decisions.installed(id), "solvable %d not forced in", id)
		assert.Equal(rootLevel, s.decisions.levelOf(id))
	}
	// the forced assignments carry the forcing rule
	assert.NotEqual(RuleNone, s.decisions.reasonOf(0))
	assert.NotEqual(RuleNone, s.decisions.reasonOf(1))
}

func TestPropagateDetectsConflict(t *testing.T) {
	pool := buildPool([]testPkg{
		{Name: "m", Version: 1},
		{Name: "m", Version: 2},
	})
	var jobs SolveJobs
	jobs.Install(pool.InternVersionSet(exactly("m", 1)))
	jobs.Install(pool.InternVersionSet(exactly("m", 2)))
	s := generateForTest(t, pool, jobs)

	conflict, err := s.applyAssertions()
	require.NoError(t, err)
	require.Equal(t, RuleNone, conflict)
	conflict, err = s.propagate()
	require.NoError(t, err)
	require.NotEqual(t, RuleNone, conflict)
	assert.Equal(t, RuleSameName, s.rules.get(conflict).Kind)
}

func TestPropagateMovesWatches(t *testing.T) {
	assert := assert.New(t)

	pool := buildPool([]testPkg{
		{Name: "a", Version: 1},
		{Name: "b", Version: 1},
		{Name: "c", Version: 1},
	})
	s := generateForTest(t, pool, SolveJobs{})
	require.Equal(t, 0, s.rules.count())

	rid := s.rules.add(Rule{
		Kind:   RuleJobInstall,
		Lits:   []Lit{MkLit(0, false), MkLit(1, false), MkLit(2, false)},
		Source: SolvableNone,
		Dep:    VersionSetNone,
	})
	require.Contains(t, s.rules.watches[MkLit(0, false)], rid)
	require.Contains(t, s.rules.watches[MkLit(1, false)], rid)

	// falsifying a watched literal moves the watch to the open third one
	require.NoError(t, s.assert(MkLit(0, true), RuleNone))
	conflict, err := s.propagate()
	require.NoError(t, err)
	require.Equal(t, RuleNone, conflict)
	assert.Empty(s.rules.watches[MkLit(0, false)])
	assert.Contains(s.rules.watches[MkLit(2, false)], rid)
	assert.False(s.decisions.assigned(1))
	assert.False(s.decisions.assigned(2))

	// with one candidate left the rule becomes unit and forces it
	require.NoError(t, s.assert(MkLit(1, true), RuleNone))
	conflict, err = s.propagate()
	require.NoError(t, err)
	require.Equal(t, RuleNone, conflict)
	assert.True(s.decisions.installed(2))
	assert.Equal(rid, s.decisions.reasonOf(2))
}

func TestPropagateConflictKeepsWatchList(t *testing.T) {
	assert := assert.New(t)

	pool := buildPool([]testPkg{
		{Name: "a", Version: 1},
		{Name: "b", Version: 1},
		{Name: "c", Version: 1},
	})
	s := generateForTest(t, pool, SolveJobs{})

	r1 := s.rules.add(Rule{Kind: RuleJobInstall, Lits: []Lit{MkLit(0, false), MkLit(1, false)}, Source: SolvableNone, Dep: VersionSetNone})
	r2 := s.rules.add(Rule{Kind: RuleJobInstall, Lits: []Lit{MkLit(0, false), MkLit(2, false)}, Source: SolvableNone, Dep: VersionSetNone})

	// stage assignments without propagating them
	require.NoError(t, s.decisions.set(1, false, RuleNone))
	require.NoError(t, s.decisions.set(2, false, RuleNone))
	s.decisions.head = len(s.decisions.log)

	require.NoError(t, s.decisions.set(0, false, RuleNone))
	conflict, err := s.propagate()
	require.NoError(t, err)
	assert.Equal(r1, conflict)

	// the unvisited tail of the watch list survives the early return
	assert.Equal([]RuleId{r1, r2}, s.rules.watches[MkLit(0, false)])
}
