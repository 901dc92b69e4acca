package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Solver finds a consistent set of installations satisfying a Pool's
// solvables and a caller's jobs, or explains why none exists. A Solver is
// bound to one Pool; each call to Solve starts from a clean slate, so a
// Solver may be reused for several job sets over the same pool. It is not
// safe for concurrent use.
type Solver struct {
	pool      *Pool
	rules     ruleSet
	decisions decisionTracker
	favored   map[SolvableId]struct{}

	tracer       Tracer
	maxDecisions int

	decisionCount int
	seen          []bool
	marked        []SolvableId
}

// New returns a Solver over pool.
func New(pool *Pool, options ...Option) (*Solver, error) {
	if pool == nil {
		return nil, errors.New("no pool provided")
	}
	s := Solver{pool: pool}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Option configures a Solver at construction.
type Option func(s *Solver) error

// WithTracer arranges for t to observe the search whenever the solver runs
// into a conflict.
func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithDecisionBudget caps the number of free decisions a solve may take
// before giving up with Incomplete. Zero means no cap.
func WithDecisionBudget(n int) Option {
	return func(s *Solver) error {
		if n < 0 {
			return fmt.Errorf("negative decision budget %d", n)
		}
		s.maxDecisions = n
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

// Solve searches for an assignment satisfying every rule generated from the
// pool and jobs. On success it returns the transaction realizing the jobs;
// on failure the error is a NotSatisfiable carrying the rules that cannot
// hold together. Cancellation of ctx and an exhausted decision budget both
// surface as Incomplete.
func (s *Solver) Solve(ctx context.Context, jobs SolveJobs) (*Transaction, error) {
	n := s.pool.SolvableCount()
	s.rules.reset(n)
	s.decisions.reset(n)
	s.favored = map[SolvableId]struct{}{}
	s.decisionCount = 0
	s.seen = make([]bool, n)
	s.marked = s.marked[:0]

	if err := s.generateRules(&jobs); err != nil {
		return nil, err
	}
	conflict, err := s.applyAssertions()
	if err != nil {
		return nil, err
	}
	if conflict != RuleNone {
		return nil, s.unsatisfiable(conflict)
	}
	conflict, err = s.propagate()
	if err != nil {
		return nil, err
	}
	if conflict != RuleNone {
		s.tracer.Trace(searchPosition{s: s, conflict: conflict})
		return nil, s.unsatisfiable(conflict)
	}

	for {
		if ctx.Err() != nil {
			return nil, Incomplete
		}
		if s.maxDecisions > 0 && s.decisionCount >= s.maxDecisions {
			return nil, Incomplete
		}
		m, ok, err := s.nextDecision()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		s.decisions.openLevel()
		s.decisionCount++
		if err := s.assert(m, RuleNone); err != nil {
			return nil, err
		}
		for {
			conflict, err := s.propagate()
			if err != nil {
				return nil, err
			}
			if conflict == RuleNone {
				break
			}
			s.tracer.Trace(searchPosition{s: s, conflict: conflict})
			if s.decisions.level() == rootLevel {
				return nil, s.unsatisfiable(conflict)
			}
			if err := s.resolveConflict(conflict); err != nil {
				return nil, err
			}
		}
	}
	return s.buildTransaction(), nil
}

// nextDecision scans the rules for an unsatisfied need: an install job, or
// a dependency of a solvable already decided in. It returns the candidate
// to try, favored ones first, then the highest version.
func (s *Solver) nextDecision() (Lit, bool, error) {
	t := &s.decisions
	for rid := RuleId(0); int(rid) < s.rules.count(); rid++ {
		r := s.rules.get(rid)
		switch r.Kind {
		case RuleJobInstall:
		case RuleRequires:
			if !t.installed(r.Source) {
				continue
			}
		default:
			continue
		}
		satisfied := false
		for _, m := range r.Lits {
			if t.value(m) == 1 {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		pick := LitNone
		for _, m := range r.Lits {
			if m.Negative() || t.value(m) != 0 {
				continue
			}
			if pick == LitNone || s.betterCandidate(m.Solvable(), pick.Solvable()) {
				pick = m
			}
		}
		if pick == LitNone {
			return LitNone, false, internalErrorf("rule %d unsatisfied with no open candidate", rid)
		}
		return pick, true, nil
	}
	return LitNone, false, nil
}

// betterCandidate reports whether a should be tried before b: favored
// candidates first, then higher versions, then lower ids. Propagation
// reorders rule literals, so candidate preference never leans on literal
// positions.
func (s *Solver) betterCandidate(a, b SolvableId) bool {
	_, fa := s.favored[a]
	_, fb := s.favored[b]
	if fa != fb {
		return fa
	}
	if c := compareVersions(s.pool.SolvableOf(a).Version, s.pool.SolvableOf(b).Version); c != 0 {
		return c > 0
	}
	return a < b
}

// resolveConflict derives a learned rule from the implications behind the
// conflict, backtracks to the deepest level at which that rule still forces
// a value, and applies it there.
func (s *Solver) resolveConflict(conflict RuleId) error {
	t := &s.decisions
	current := t.level()

	for _, id := range s.marked {
		s.seen[id] = false
	}
	s.marked = s.marked[:0]

	learned := []Lit{LitNone}
	counter := 0
	idx := len(t.log) - 1
	reason := s.rules.get(conflict).Lits
	var uip Lit

	for {
		for _, q := range reason {
			v := q.Solvable()
			if s.seen[v] {
				continue
			}
			s.seen[v] = true
			s.marked = append(s.marked, v)
			switch lvl := t.levelOf(v); {
			case lvl == current:
				counter++
			case lvl > rootLevel:
				learned = append(learned, q)
			}
		}
		for idx >= 0 && !s.seen[t.log[idx].Solvable] {
			idx--
		}
		if idx < 0 {
			return internalErrorf("conflict analysis ran out of assignments")
		}
		d := t.log[idx]
		counter--
		if counter == 0 {
			uip = MkLit(d.Solvable, d.Value)
			break
		}
		rid := t.reasonOf(d.Solvable)
		if rid == RuleNone {
			return internalErrorf("conflict analysis crossed a free decision")
		}
		reason = s.rules.get(rid).Lits
		idx--
	}
	learned[0] = uip

	// The deepest remaining literal sits second so both watches of the
	// learned rule fall back to undecided together under later
	// backtracking.
	back := rootLevel
	for i := 1; i < len(learned); i++ {
		if lvl := t.levelOf(learned[i].Solvable()); lvl > back {
			back = lvl
			learned[1], learned[i] = learned[i], learned[1]
		}
	}

	rid := s.rules.add(Rule{Kind: RuleLearned, Lits: learned, Source: SolvableNone, Dep: VersionSetNone})
	t.backTo(back)
	return s.assert(uip, rid)
}

// unsatisfiable assembles the NotSatisfiable error for a conflict at the
// root level: the conflicting rule plus every rule on the implication paths
// feeding it.
func (s *Solver) unsatisfiable(conflict RuleId) error {
	t := &s.decisions
	involved := map[RuleId]struct{}{}
	visited := map[SolvableId]struct{}{}
	queue := []RuleId{conflict}
	for len(queue) > 0 {
		rid := queue[0]
		queue = queue[1:]
		if _, ok := involved[rid]; ok {
			continue
		}
		involved[rid] = struct{}{}
		for _, m := range s.rules.get(rid).Lits {
			v := m.Solvable()
			if _, ok := visited[v]; ok {
				continue
			}
			visited[v] = struct{}{}
			if !t.assigned(v) {
				continue
			}
			if reason := t.reasonOf(v); reason != RuleNone {
				queue = append(queue, reason)
			}
		}
	}
	ids := make([]RuleId, 0, len(involved))
	for rid := range involved {
		if s.rules.get(rid).Kind == RuleLearned {
			continue
		}
		ids = append(ids, rid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	applied := make(NotSatisfiable, 0, len(ids))
	for _, rid := range ids {
		applied = append(applied, s.appliedRule(rid))
	}
	return applied
}

// appliedRule renders rid for error reporting.
func (s *Solver) appliedRule(rid RuleId) AppliedRule {
	r := s.rules.get(rid)
	return AppliedRule{Kind: r.Kind, Description: s.describeRule(rid)}
}

// describeRule renders rid in terms of package names and versions.
// Propagation reorders rule literals, so positional assumptions are avoided
// for anything longer than one literal.
func (s *Solver) describeRule(rid RuleId) string {
	p := s.pool
	r := s.rules.get(rid)
	switch r.Kind {
	case RuleRequires:
		if len(r.Lits) == 1 {
			return fmt.Sprintf("%s requires %s, but nothing provides it", p.SolvableString(r.Source), p.VersionSetOf(r.Dep))
		}
		return fmt.Sprintf("%s requires %s", p.SolvableString(r.Source), p.VersionSetOf(r.Dep))
	case RuleConstrains:
		other := r.Lits[0]
		if other.Solvable() == r.Source {
			other = r.Lits[1]
		}
		return fmt.Sprintf("%s conflicts with %s", p.SolvableString(r.Source), p.SolvableString(other.Solvable()))
	case RuleSameName:
		a, b := r.Lits[0].Solvable(), r.Lits[1].Solvable()
		if b < a {
			a, b = b, a
		}
		return fmt.Sprintf("only one of %s and %s may be installed", p.SolvableString(a), p.SolvableString(b))
	case RuleJobInstall:
		if len(r.Lits) == 0 {
			return fmt.Sprintf("nothing provides requested %s", p.VersionSetOf(r.Dep))
		}
		return fmt.Sprintf("%s is requested", p.VersionSetOf(r.Dep))
	case RuleJobLock:
		if len(r.Lits) == 1 && !r.Lits[0].Negative() {
			return fmt.Sprintf("%s is locked", p.SolvableString(r.Source))
		}
		return fmt.Sprintf("lock on %s excludes %s", p.SolvableString(r.Source), p.SolvableString(r.Lits[0].Solvable()))
	case RuleLearned:
		return fmt.Sprintf("learned rule over %d candidates", len(r.Lits))
	}
	return "unknown rule"
}
