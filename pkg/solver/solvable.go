package solver

import (
	"fmt"
	"math"
)

// SolvableId identifies one concrete candidate held by a Pool. Ids are dense
// and stable for the lifetime of the Pool.
type SolvableId uint32

// NameId identifies an interned package name.
type NameId uint32

// VersionSetId identifies an interned version constraint.
type VersionSetId uint32

// RuleId identifies one clause in a solver's rule set. Learned rules are
// appended behind the generated ones.
type RuleId uint32

const (
	// RuleNone marks the absence of a rule, e.g. the reason of a free
	// decision.
	RuleNone RuleId = math.MaxUint32

	// SolvableNone marks the absence of a solvable on rules that are not
	// tied to one.
	SolvableNone SolvableId = math.MaxUint32

	// VersionSetNone marks the absence of a version set on rules that
	// were not generated from one.
	VersionSetNone VersionSetId = math.MaxUint32
)

// Lit is a boolean literal over a solvable: the statement that the solvable
// is installed (positive) or absent (negative). The low bit carries the
// polarity and the remaining bits the SolvableId, so literals index densely
// into watch lists.
type Lit uint32

// LitNone marks the absence of a literal.
const LitNone Lit = math.MaxUint32

// MkLit builds the literal for id, negated when negative is true.
func MkLit(id SolvableId, negative bool) Lit {
	m := Lit(id) << 1
	if negative {
		m |= 1
	}
	return m
}

// Solvable returns the solvable the literal speaks about.
func (m Lit) Solvable() SolvableId { return SolvableId(m >> 1) }

// Negative reports whether the literal asserts the solvable absent.
func (m Lit) Negative() bool { return m&1 == 1 }

// Not returns the literal with inverted polarity.
func (m Lit) Not() Lit { return m ^ 1 }

func (m Lit) String() string {
	if m == LitNone {
		return "<none>"
	}
	if m.Negative() {
		return fmt.Sprintf("-%d", m.Solvable())
	}
	return fmt.Sprintf("+%d", m.Solvable())
}

// Version orders the releases of a package. Implementations must be
// comparable against any Version produced by the same loader.
type Version interface {
	// Compare returns -1, 0 or 1 as v sorts before, equal to or after
	// other.
	Compare(other Version) int
	String() string
}

// VersionSet is a constraint over the candidates of a single package name.
type VersionSet interface {
	// PackageName returns the name the constraint ranges over.
	PackageName() string
	// Matches reports whether the candidate satisfies the constraint.
	Matches(s *Solvable) bool
	// String renders the constraint in the loader's spec syntax.
	String() string
}

// Solvable is one installable candidate. Dependencies and constraints point
// at interned version sets in the owning Pool.
type Solvable struct {
	Name       NameId
	Version    Version
	Build      string
	Depends    []VersionSetId
	Constrains []VersionSetId
}
