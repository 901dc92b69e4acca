package solver

// Decision records one assignment: the solvable, the value it took, and the
// rule that forced it (RuleNone for free decisions).
type Decision struct {
	Solvable SolvableId
	Value    bool
	Reason   RuleId
}

// rootLevel is the decision level of job assertions and their propagations.
// Free decisions open levels above it.
const rootLevel = 1

// decisionTracker is the assignment state of one solve: a signed level per
// solvable plus the ordered log that propagation and conflict analysis walk.
//
// levels[id] holds 0 while id is undecided, +L when id was set true at
// decision level L, and -L when it was set false at L.
type decisionTracker struct {
	levels  []int32
	reasons []RuleId
	log     []Decision
	marks   []int // log length at the moment each level above rootLevel was opened
	head    int   // log index of the next assignment to propagate
}

func (t *decisionTracker) reset(n int) {
	t.levels = make([]int32, n)
	t.reasons = make([]RuleId, n)
	for i := range t.reasons {
		t.reasons[i] = RuleNone
	}
	t.log = t.log[:0]
	t.marks = t.marks[:0]
	t.head = 0
}

// level returns the current decision level.
func (t *decisionTracker) level() int {
	return rootLevel + len(t.marks)
}

// openLevel starts a new decision level for one free decision.
func (t *decisionTracker) openLevel() {
	t.marks = append(t.marks, len(t.log))
}

// set commits an assignment at the current level. Committing a value that
// contradicts an earlier one is a propagator bug, not an input problem, and
// surfaces as an InternalError.
func (t *decisionTracker) set(id SolvableId, value bool, reason RuleId) error {
	cur := t.levels[id]
	if cur != 0 {
		if (cur > 0) != value {
			return internalErrorf("solvable %d assigned %v over committed %v", id, value, cur > 0)
		}
		return nil
	}
	lvl := int32(t.level())
	if !value {
		lvl = -lvl
	}
	t.levels[id] = lvl
	t.reasons[id] = reason
	t.log = append(t.log, Decision{Solvable: id, Value: value, Reason: reason})
	return nil
}

// value returns +1, -1 or 0 as m is satisfied, falsified or undecided.
func (t *decisionTracker) value(m Lit) int8 {
	v := t.levels[m.Solvable()]
	if v == 0 {
		return 0
	}
	if (v > 0) == !m.Negative() {
		return 1
	}
	return -1
}

// assigned reports whether id carries a value.
func (t *decisionTracker) assigned(id SolvableId) bool {
	return t.levels[id] != 0
}

// installed reports whether id was decided true.
func (t *decisionTracker) installed(id SolvableId) bool {
	return t.levels[id] > 0
}

// levelOf returns the level id was decided at, or 0 if undecided.
func (t *decisionTracker) levelOf(id SolvableId) int {
	v := t.levels[id]
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

// reasonOf returns the rule that forced id, or RuleNone.
func (t *decisionTracker) reasonOf(id SolvableId) RuleId {
	return t.reasons[id]
}

// backTo undoes every assignment above level, which becomes current again.
func (t *decisionTracker) backTo(level int) {
	if level >= t.level() {
		return
	}
	cut := t.marks[level-rootLevel]
	for i := len(t.log) - 1; i >= cut; i-- {
		id := t.log[i].Solvable
		t.levels[id] = 0
		t.reasons[id] = RuleNone
	}
	t.log = t.log[:cut]
	t.marks = t.marks[:level-rootLevel]
	t.head = len(t.log)
}
