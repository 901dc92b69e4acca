// Package match implements the version and constraint model the solver
// operates on: semantic versions, semver ranges and build-string globs, in
// the "name", "name range" or "name range build-glob" spec syntax of
// channel listings.
package match

import (
	"strings"

	"github.com/blang/semver/v4"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/conda/gosolv/pkg/solver"
)

// Version is a semantic version. It implements solver.Version.
type Version struct {
	v semver.Version
}

// ParseVersion reads a version, tolerating the usual shorthand forms such
// as a missing patch component.
func ParseVersion(s string) (Version, error) {
	v, err := semver.ParseTolerant(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "invalid version %q", s)
	}
	return Version{v: v}, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders v against any other Version from this package. Foreign
// solver.Version implementations are ordered by their renderings so that
// mixed pools still sort deterministically.
func (v Version) Compare(other solver.Version) int {
	if o, ok := other.(Version); ok {
		return v.v.Compare(o.v)
	}
	return strings.Compare(v.String(), other.String())
}

func (v Version) String() string {
	return v.v.String()
}

// MatchSpec constrains the candidates of one package name: an optional
// semver range and an optional glob over build strings. The zero range and
// the zero glob each match everything. It implements solver.VersionSet.
type MatchSpec struct {
	name  string
	raw   string
	rng   semver.Range
	build glob.Glob
}

// Parse reads a spec of the form "name", "name range" or
// "name range build-glob". Commas inside the range separate clauses that
// must all hold, e.g. "numpy >=1.21.0,<2.0.0". Range clauses name full
// versions; wildcard forms such as "1.21.x" are accepted.
func Parse(s string) (MatchSpec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return MatchSpec{}, errors.New("empty spec")
	}
	if len(fields) > 3 {
		return MatchSpec{}, errors.Errorf("spec %q has more than three fields", s)
	}
	m := MatchSpec{
		name: fields[0],
		raw:  strings.Join(fields, " "),
	}
	if len(fields) > 1 {
		rng, err := semver.ParseRange(strings.ReplaceAll(fields[1], ",", " "))
		if err != nil {
			return MatchSpec{}, errors.Wrapf(err, "invalid range %q in spec %q", fields[1], s)
		}
		m.rng = rng
	}
	if len(fields) > 2 {
		g, err := glob.Compile(fields[2])
		if err != nil {
			return MatchSpec{}, errors.Wrapf(err, "invalid build glob %q in spec %q", fields[2], s)
		}
		m.build = g
	}
	return m, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) MatchSpec {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// PackageName returns the name the match spec ranges over.
func (m MatchSpec) PackageName() string {
	return m.name
}

// Matches reports whether the candidate's version and build satisfy the
// spec. The candidate's name is not examined; the pool only ever offers
// same-named candidates.
func (m MatchSpec) Matches(s *solver.Solvable) bool {
	if m.rng != nil {
		v, ok := s.Version.(Version)
		if !ok || !m.rng(v.v) {
			return false
		}
	}
	if m.build != nil && !m.build.Match(s.Build) {
		return false
	}
	return true
}

func (m MatchSpec) String() string {
	return m.raw
}
