package solver

import "fmt"

// Pool owns every solvable, name and version set of one solve universe and
// hands out the integer ids the rest of the engine operates on. A Pool is
// not safe for concurrent use.
type Pool struct {
	names   arena[NameId, string]
	nameIds map[string]NameId

	sets   arena[VersionSetId, VersionSet]
	setIds map[string]VersionSetId

	solvables arena[SolvableId, Solvable]
	byName    map[NameId][]SolvableId

	multi map[NameId]struct{}

	// candidate lists per version set, built lazily and dropped whenever
	// the universe changes
	matchCache map[VersionSetId][]SolvableId
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{
		nameIds:    map[string]NameId{},
		setIds:     map[string]VersionSetId{},
		byName:     map[NameId][]SolvableId{},
		multi:      map[NameId]struct{}{},
		matchCache: map[VersionSetId][]SolvableId{},
	}
}

// InternName returns the id for name, allocating one on first use.
func (p *Pool) InternName(name string) NameId {
	if id, ok := p.nameIds[name]; ok {
		return id
	}
	id := p.names.alloc(name)
	p.nameIds[name] = id
	return id
}

// LookupName returns the id of name if it was interned.
func (p *Pool) LookupName(name string) (NameId, bool) {
	id, ok := p.nameIds[name]
	return id, ok
}

// NameOf returns the name interned under id.
func (p *Pool) NameOf(id NameId) string {
	return *p.names.get(id)
}

// InternVersionSet returns the id for vs, reusing the id of any previously
// interned set with the same package name and rendering.
func (p *Pool) InternVersionSet(vs VersionSet) VersionSetId {
	if vs == nil {
		panic("pool: nil version set")
	}
	key := vs.PackageName() + "\x00" + vs.String()
	if id, ok := p.setIds[key]; ok {
		return id
	}
	id := p.sets.alloc(vs)
	p.setIds[key] = id
	return id
}

// VersionSetOf returns the version set interned under id.
func (p *Pool) VersionSetOf(id VersionSetId) VersionSet {
	return *p.sets.get(id)
}

// AddSolvable records a candidate and returns its id. Dependency and
// constraint ids must come from this Pool.
func (p *Pool) AddSolvable(name string, version Version, build string, depends, constrains []VersionSetId) SolvableId {
	nid := p.InternName(name)
	id := p.solvables.alloc(Solvable{
		Name:       nid,
		Version:    version,
		Build:      build,
		Depends:    depends,
		Constrains: constrains,
	})
	p.byName[nid] = append(p.byName[nid], id)
	if len(p.matchCache) != 0 {
		p.matchCache = map[VersionSetId][]SolvableId{}
	}
	return id
}

// SolvableOf returns the stored candidate for id.
func (p *Pool) SolvableOf(id SolvableId) *Solvable {
	return p.solvables.get(id)
}

// SolvableCount returns the number of candidates in the pool.
func (p *Pool) SolvableCount() int {
	return p.solvables.len()
}

// SolvablesOf returns the candidate ids sharing name, in insertion order.
// The returned slice is owned by the Pool.
func (p *Pool) SolvablesOf(name NameId) []SolvableId {
	return p.byName[name]
}

// AllowMultiple exempts name from the usual rule that at most one of its
// candidates may be installed.
func (p *Pool) AllowMultiple(name string) {
	p.multi[p.InternName(name)] = struct{}{}
}

func (p *Pool) multipleAllowed(name NameId) bool {
	_, ok := p.multi[name]
	return ok
}

// Candidates returns the ids of every solvable matched by the version set,
// in insertion order. Results are cached until the universe changes. The
// returned slice is owned by the Pool.
func (p *Pool) Candidates(id VersionSetId) []SolvableId {
	if cached, ok := p.matchCache[id]; ok {
		return cached
	}
	vs := p.VersionSetOf(id)
	var out []SolvableId
	if nid, ok := p.nameIds[vs.PackageName()]; ok {
		for _, sid := range p.byName[nid] {
			if vs.Matches(p.SolvableOf(sid)) {
				out = append(out, sid)
			}
		}
	}
	p.matchCache[id] = out
	return out
}

// SolvableString renders id as name-version-build for messages.
func (p *Pool) SolvableString(id SolvableId) string {
	s := p.SolvableOf(id)
	name := p.NameOf(s.Name)
	switch {
	case s.Version == nil:
		return name
	case s.Build == "":
		return fmt.Sprintf("%s-%s", name, s.Version)
	default:
		return fmt.Sprintf("%s-%s-%s", name, s.Version, s.Build)
	}
}

// Reset drops every solvable, name and version set. All previously issued
// ids become invalid.
func (p *Pool) Reset() {
	p.names.clear()
	p.sets.clear()
	p.solvables.clear()
	p.nameIds = map[string]NameId{}
	p.setIds = map[string]VersionSetId{}
	p.byName = map[NameId][]SolvableId{}
	p.multi = map[NameId]struct{}{}
	p.matchCache = map[VersionSetId][]SolvableId{}
}
