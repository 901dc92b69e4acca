package solver

import (
	"fmt"
	"io"
)

// SearchPosition is a snapshot of the search at the moment of a conflict.
type SearchPosition interface {
	// Decisions returns the assignments in force, oldest first, rendered
	// for humans.
	Decisions() []string
	// Conflict returns the rule the position violates.
	Conflict() AppliedRule
}

// Tracer is notified whenever the search runs into a conflict, before the
// solver decides how to continue.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer ignores every position.
type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {}

// LoggingTracer writes every position it sees to its Writer.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nDecisions:\n")
	for _, d := range p.Decisions() {
		fmt.Fprintf(t.Writer, "- %s\n", d)
	}
	fmt.Fprintf(t.Writer, "Conflict:\n- %s\n", p.Conflict())
}

type searchPosition struct {
	s        *Solver
	conflict RuleId
}

func (p searchPosition) Decisions() []string {
	t := &p.s.decisions
	out := make([]string, 0, len(t.log))
	for _, d := range t.log {
		verb := "install"
		if !d.Value {
			verb = "exclude"
		}
		suffix := ""
		if d.Reason == RuleNone {
			suffix = " (decision)"
		}
		out = append(out, fmt.Sprintf("%s %s at level %d%s", verb, p.s.pool.SolvableString(d.Solvable), t.levelOf(d.Solvable), suffix))
	}
	return out
}

func (p searchPosition) Conflict() AppliedRule {
	return p.s.appliedRule(p.conflict)
}
