package solver

// assert commits m with reason and queues it for propagation.
func (s *Solver) assert(m Lit, reason RuleId) error {
	return s.decisions.set(m.Solvable(), !m.Negative(), reason)
}

// applyAssertions pushes every rule too short to watch onto the root level.
// It returns the first rule that is already violated, or RuleNone.
func (s *Solver) applyAssertions() (RuleId, error) {
	for _, rid := range s.rules.assertions {
		r := s.rules.get(rid)
		if len(r.Lits) == 0 {
			return rid, nil
		}
		m := r.Lits[0]
		switch s.decisions.value(m) {
		case 1:
		case -1:
			return rid, nil
		default:
			if err := s.assert(m, rid); err != nil {
				return RuleNone, err
			}
		}
	}
	return RuleNone, nil
}

// propagate works the decision log to its fixed point, forcing the last
// open literal of any rule whose alternatives are all falsified. It returns
// the first conflicting rule, or RuleNone once a fixed point is reached.
func (s *Solver) propagate() (RuleId, error) {
	t := &s.decisions
	for t.head < len(t.log) {
		d := t.log[t.head]
		t.head++
		conflict, err := s.propagateLit(MkLit(d.Solvable, d.Value))
		if conflict != RuleNone || err != nil {
			return conflict, err
		}
	}
	return RuleNone, nil
}

// propagateLit visits every rule watching the newly falsified literal. A
// rule keeps its watched literals in the first two positions and leaves the
// list only by moving its watch to a literal that is not falsified.
func (s *Solver) propagateLit(falsified Lit) (RuleId, error) {
	t := &s.decisions
	ws := s.rules.watches[falsified]
	kept := ws[:0]
	for i := 0; i < len(ws); i++ {
		rid := ws[i]
		r := s.rules.get(rid)
		if r.Lits[0] == falsified {
			r.Lits[0], r.Lits[1] = r.Lits[1], r.Lits[0]
		}
		other := r.Lits[0]
		if t.value(other) == 1 {
			kept = append(kept, rid)
			continue
		}
		moved := false
		for k := 2; k < len(r.Lits); k++ {
			if t.value(r.Lits[k]) != -1 {
				r.Lits[1], r.Lits[k] = r.Lits[k], r.Lits[1]
				s.rules.watch(r.Lits[1], rid)
				moved = true
				break
			}
		}
		if moved {
			continue
		}
		kept = append(kept, rid)
		if t.value(other) == -1 {
			kept = append(kept, ws[i+1:]...)
			s.rules.watches[falsified] = kept
			return rid, nil
		}
		if err := s.assert(other, rid); err != nil {
			kept = append(kept, ws[i+1:]...)
			s.rules.watches[falsified] = kept
			return RuleNone, err
		}
	}
	s.rules.watches[falsified] = kept
	return RuleNone, nil
}
