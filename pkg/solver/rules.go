package solver

import "sort"

// RuleKind tags what produced a rule and fixes how it is rendered.
type RuleKind uint8

const (
	// RuleRequires: a solvable needs at least one provider of one of its
	// dependencies. Lits are the negated source followed by providers.
	RuleRequires RuleKind = iota
	// RuleConstrains: a solvable rules out one candidate matching one of
	// its constraints. Lits are the negated source and negated candidate.
	RuleConstrains
	// RuleSameName: two candidates share a name and may not be installed
	// together.
	RuleSameName
	// RuleJobInstall: the caller asked for a provider of a version set.
	// Lits are the matching candidates.
	RuleJobInstall
	// RuleJobLock: the caller pinned a solvable; one rule forces it in
	// and one per same-named sibling forces the sibling out.
	RuleJobLock
	// RuleLearned: synthesized during conflict analysis.
	RuleLearned
)

func (k RuleKind) String() string {
	switch k {
	case RuleRequires:
		return "requires"
	case RuleConstrains:
		return "constrains"
	case RuleSameName:
		return "same-name"
	case RuleJobInstall:
		return "install"
	case RuleJobLock:
		return "lock"
	case RuleLearned:
		return "learned"
	}
	return "unknown"
}

// Rule is one clause: the disjunction of Lits must hold in any solution.
// The first two literals are the watched ones; propagation may reorder Lits
// but never changes their set.
type Rule struct {
	Kind   RuleKind
	Lits   []Lit
	Source SolvableId   // generating solvable, SolvableNone for job rules
	Dep    VersionSetId // generating version set, where one applies
}

// ruleSet stores generated and learned rules together with the watch lists
// that drive propagation.
type ruleSet struct {
	rules      arena[RuleId, Rule]
	watches    [][]RuleId // indexed by Lit
	assertions []RuleId   // rules of fewer than two literals
}

func (rs *ruleSet) reset(solvables int) {
	rs.rules.clear()
	rs.watches = make([][]RuleId, 2*solvables)
	rs.assertions = rs.assertions[:0]
}

func (rs *ruleSet) get(id RuleId) *Rule {
	return rs.rules.get(id)
}

func (rs *ruleSet) count() int {
	return rs.rules.len()
}

// add stores r and wires its watches. Rules of fewer than two literals
// cannot be watched and go to the assertion list instead.
func (rs *ruleSet) add(r Rule) RuleId {
	id := rs.rules.alloc(r)
	if len(r.Lits) >= 2 {
		rs.watch(r.Lits[0], id)
		rs.watch(r.Lits[1], id)
	} else {
		rs.assertions = append(rs.assertions, id)
	}
	return id
}

func (rs *ruleSet) watch(m Lit, id RuleId) {
	rs.watches[m] = append(rs.watches[m], id)
}

// generateRules translates the pool and the jobs into clauses. The order is
// fixed so equal inputs yield equal rule ids: per-solvable rules in id order
// with requires before constrains, then same-name exclusions, then job rules
// in request order.
func (s *Solver) generateRules(jobs *SolveJobs) error {
	p := s.pool
	for id := SolvableId(0); int(id) < p.SolvableCount(); id++ {
		slv := p.SolvableOf(id)
		for _, dep := range slv.Depends {
			if !p.sets.valid(dep) {
				return malformedf("solvable %s depends on unknown version set id %d", p.SolvableString(id), dep)
			}
			cands := s.orderedCandidates(dep)
			if containsSolvable(cands, id) {
				// the solvable provides its own dependency
				continue
			}
			lits := make([]Lit, 0, len(cands)+1)
			lits = append(lits, MkLit(id, true))
			for _, c := range cands {
				lits = append(lits, MkLit(c, false))
			}
			s.rules.add(Rule{Kind: RuleRequires, Lits: lits, Source: id, Dep: dep})
		}
		for _, con := range slv.Constrains {
			if !p.sets.valid(con) {
				return malformedf("solvable %s constrains unknown version set id %d", p.SolvableString(id), con)
			}
			for _, c := range p.Candidates(con) {
				if c == id {
					continue
				}
				s.rules.add(Rule{
					Kind:   RuleConstrains,
					Lits:   []Lit{MkLit(id, true), MkLit(c, true)},
					Source: id,
					Dep:    con,
				})
			}
		}
	}

	for nid := NameId(0); int(nid) < p.names.len(); nid++ {
		if p.multipleAllowed(nid) {
			continue
		}
		ids := p.byName[nid]
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				s.rules.add(Rule{
					Kind:   RuleSameName,
					Lits:   []Lit{MkLit(ids[i], true), MkLit(ids[j], true)},
					Source: SolvableNone,
					Dep:    VersionSetNone,
				})
			}
		}
	}

	for _, vs := range jobs.install {
		if !p.sets.valid(vs) {
			return malformedf("install job references unknown version set id %d", vs)
		}
		cands := s.orderedCandidates(vs)
		lits := make([]Lit, 0, len(cands))
		for _, c := range cands {
			lits = append(lits, MkLit(c, false))
		}
		s.rules.add(Rule{Kind: RuleJobInstall, Lits: lits, Source: SolvableNone, Dep: vs})
	}
	for _, lid := range jobs.lock {
		if !p.solvables.valid(lid) {
			return malformedf("lock job references unknown solvable id %d", lid)
		}
		s.rules.add(Rule{Kind: RuleJobLock, Lits: []Lit{MkLit(lid, false)}, Source: lid, Dep: VersionSetNone})
		for _, other := range p.byName[p.SolvableOf(lid).Name] {
			if other == lid {
				continue
			}
			s.rules.add(Rule{Kind: RuleJobLock, Lits: []Lit{MkLit(other, true)}, Source: lid, Dep: VersionSetNone})
		}
	}
	for _, fid := range jobs.favor {
		if !p.solvables.valid(fid) {
			return malformedf("favor job references unknown solvable id %d", fid)
		}
		s.favored[fid] = struct{}{}
	}
	return nil
}

// orderedCandidates returns the candidates of vs best-first: highest
// version first, insertion order among equals.
func (s *Solver) orderedCandidates(vs VersionSetId) []SolvableId {
	cands := s.pool.Candidates(vs)
	out := make([]SolvableId, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := s.pool.SolvableOf(out[i]), s.pool.SolvableOf(out[j])
		if c := compareVersions(a.Version, b.Version); c != 0 {
			return c > 0
		}
		return out[i] < out[j]
	})
	return out
}

// compareVersions orders possibly-nil versions, nil sorting lowest.
func compareVersions(a, b Version) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(b)
}

func containsSolvable(ids []SolvableId, id SolvableId) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
