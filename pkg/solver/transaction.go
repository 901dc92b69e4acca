package solver

// StepKind is the action a transaction step performs.
type StepKind uint8

const (
	// StepInstall places a solvable into the environment.
	StepInstall StepKind = iota
)

func (k StepKind) String() string {
	if k == StepInstall {
		return "install"
	}
	return "unknown"
}

// Step is one action of a transaction.
type Step struct {
	Solvable SolvableId
	Kind     StepKind
}

// Transaction is the ordered outcome of a successful solve. Steps are
// sorted dependencies-first as far as the dependency graph allows; cycles
// are broken at the smallest solvable id.
type Transaction struct {
	Steps []Step
}

// Solvables returns the ids the transaction installs, in step order.
func (tx *Transaction) Solvables() []SolvableId {
	out := make([]SolvableId, 0, len(tx.Steps))
	for _, st := range tx.Steps {
		out = append(out, st.Solvable)
	}
	return out
}

// buildTransaction orders the solvables decided in so that every installed
// provider of a dependency precedes its dependents.
func (s *Solver) buildTransaction() *Transaction {
	t := &s.decisions
	p := s.pool

	var installed []SolvableId
	for id := SolvableId(0); int(id) < p.SolvableCount(); id++ {
		if t.installed(id) {
			installed = append(installed, id)
		}
	}

	index := make(map[SolvableId]int, len(installed))
	for i, id := range installed {
		index[id] = i
	}
	indegree := make([]int, len(installed))
	dependents := make([][]int, len(installed))
	for i, id := range installed {
		for _, dep := range p.SolvableOf(id).Depends {
			for _, c := range p.Candidates(dep) {
				j, ok := index[c]
				if !ok || j == i {
					continue
				}
				dependents[j] = append(dependents[j], i)
				indegree[i]++
			}
		}
	}

	steps := make([]Step, 0, len(installed))
	emitted := make([]bool, len(installed))
	for remaining := len(installed); remaining > 0; remaining-- {
		pick := -1
		for i := range installed {
			if !emitted[i] && indegree[i] == 0 {
				pick = i
				break
			}
		}
		if pick == -1 {
			// dependency cycle: fall back to the smallest id
			for i := range installed {
				if !emitted[i] {
					pick = i
					break
				}
			}
		}
		emitted[pick] = true
		steps = append(steps, Step{Solvable: installed[pick], Kind: StepInstall})
		for _, d := range dependents[pick] {
			indegree[d]--
		}
	}
	return &Transaction{Steps: steps}
}
