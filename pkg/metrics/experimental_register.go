//go:build experimental_metrics
// +build experimental_metrics

package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	// Register experimental metrics
	conflictMetrics = conflictCounters(requiresRule, constrainsRule, sameNameRule, installRule, lockRule, learnedRule)
	registerConflictMetrics()
}

func conflictCounters(ruleKinds ...string) map[string]prometheus.Counter {
	result := map[string]prometheus.Counter{}
	for _, s := range ruleKinds {
		result[s] = createConflictCounter(s)
	}
	return result
}

func createConflictCounter(kind string) prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gosolv_solve_conflicts_" + strings.Replace(kind, "-", "_", -1),
			Help: fmt.Sprintf("Count of conflicts hit on %s rules during search", strings.Replace(kind, "-", " ", -1)),
		},
	)
}

func registerConflictMetrics() {
	for _, v := range conflictMetrics {
		prometheus.MustRegister(v)
	}
}
