package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	// Rule kinds
	requiresRule   = "requires"
	constrainsRule = "constrains"
	sameNameRule   = "same-name"
	installRule    = "install"
	lockRule       = "lock"
	learnedRule    = "learned"
)

var (
	conflictMetrics = map[string]prometheus.Counter{}
)

// EmitSolveConflict counts one conflict hit during search, attributed to
// the kind of rule that failed. A no-op unless experimental metrics are
// compiled in.
func EmitSolveConflict(kind string) {
	if counter, ok := conflictMetrics[kind]; ok {
		counter.Inc()
	}
}
