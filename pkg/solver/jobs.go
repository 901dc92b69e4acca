package solver

// SolveJobs carries the caller's requests into a solve: version sets that
// must be satisfied, solvables to prefer when the solver is otherwise
// indifferent, and solvables pinned exclusively to their current version.
// The zero value is an empty job set.
type SolveJobs struct {
	install []VersionSetId
	favor   []SolvableId
	lock    []SolvableId
}

// Install requests that at least one candidate matching vs be installed.
func (j *SolveJobs) Install(vs VersionSetId) {
	j.install = append(j.install, vs)
}

// Favor prefers id over its siblings when a free choice comes up. Favoring
// never changes whether a solve succeeds, only which solution is reported.
func (j *SolveJobs) Favor(id SolvableId) {
	j.favor = append(j.favor, id)
}

// Lock pins id: it is part of any solution, and every other candidate of
// the same name is excluded.
func (j *SolveJobs) Lock(id SolvableId) {
	j.lock = append(j.lock, id)
}
