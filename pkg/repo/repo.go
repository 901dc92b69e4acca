// Package repo reads channel listings and solve requests from YAML and
// binds them into a solver pool. Listings are the on-disk form of the
// package universe: one record per (name, version, build).
package repo

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/conda/gosolv/pkg/match"
	"github.com/conda/gosolv/pkg/solver"
)

// Record is one packaged build in a channel listing.
type Record struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Build      string   `json:"build,omitempty"`
	Depends    []string `json:"depends,omitempty"`
	Constrains []string `json:"constrains,omitempty"`
}

// Channel is a parsed channel listing.
type Channel struct {
	Name     string   `json:"name,omitempty"`
	Packages []Record `json:"packages"`
}

// Request is what a caller asks a solve to do. Install entries are match
// specs; favor and lock entries name exact builds as "name version" or
// "name version build". Remove is recognized but not yet supported by the
// transaction builder.
type Request struct {
	Install       []string `json:"install"`
	Favor         []string `json:"favor,omitempty"`
	Lock          []string `json:"lock,omitempty"`
	Remove        []string `json:"remove,omitempty"`
	AllowMultiple []string `json:"allowMultiple,omitempty"`
}

// LoadChannel reads one channel listing from path.
func LoadChannel(path string) (*Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading channel %s", path)
	}
	var ch Channel
	if err := yaml.Unmarshal(data, &ch); err != nil {
		return nil, errors.Wrapf(err, "parsing channel %s", path)
	}
	if ch.Name == "" {
		ch.Name = path
	}
	return &ch, nil
}

// LoadRequest reads one solve request from path.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading request %s", path)
	}
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrapf(err, "parsing request %s", path)
	}
	return &req, nil
}

// BuildPool interns every record of the given channels into a fresh pool.
// A (name, version, build) triple is allocated once; later duplicates,
// e.g. the same build listed by two channels, are dropped.
func BuildPool(channels ...*Channel) (*solver.Pool, error) {
	pool := solver.NewPool()
	seen := map[string]struct{}{}
	for _, ch := range channels {
		for _, rec := range ch.Packages {
			if rec.Name == "" {
				return nil, &solver.MalformedInputError{Detail: fmt.Sprintf("record without a name in channel %s", ch.Name)}
			}
			v, err := match.ParseVersion(rec.Version)
			if err != nil {
				return nil, &solver.MalformedInputError{Detail: fmt.Sprintf("package %s in channel %s: %v", rec.Name, ch.Name, err)}
			}
			key := rec.Name + "\x00" + v.String() + "\x00" + rec.Build
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			depends, err := internSpecs(pool, rec.Depends)
			if err != nil {
				return nil, &solver.MalformedInputError{Detail: fmt.Sprintf("package %s in channel %s: %v", rec.Name, ch.Name, err)}
			}
			constrains, err := internSpecs(pool, rec.Constrains)
			if err != nil {
				return nil, &solver.MalformedInputError{Detail: fmt.Sprintf("package %s in channel %s: %v", rec.Name, ch.Name, err)}
			}
			pool.AddSolvable(rec.Name, v, rec.Build, depends, constrains)
		}
	}
	return pool, nil
}

func internSpecs(pool *solver.Pool, specs []string) ([]solver.VersionSetId, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	ids := make([]solver.VersionSetId, 0, len(specs))
	for _, s := range specs {
		spec, err := match.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, pool.InternVersionSet(spec))
	}
	return ids, nil
}

// BuildJobs translates req against pool. Names listed under AllowMultiple
// are exempted from the at-most-one rule on the pool itself.
func BuildJobs(pool *solver.Pool, req *Request) (solver.SolveJobs, error) {
	var jobs solver.SolveJobs
	if len(req.Remove) > 0 {
		return jobs, &solver.UnsupportedOperationError{Operation: "remove"}
	}
	for _, name := range req.AllowMultiple {
		pool.AllowMultiple(name)
	}
	for _, s := range req.Install {
		spec, err := match.Parse(s)
		if err != nil {
			return jobs, &solver.MalformedInputError{Detail: fmt.Sprintf("install %q: %v", s, err)}
		}
		jobs.Install(pool.InternVersionSet(spec))
	}
	for _, s := range req.Lock {
		id, err := findSolvable(pool, s)
		if err != nil {
			return jobs, errors.Wrapf(err, "lock %q", s)
		}
		jobs.Lock(id)
	}
	for _, s := range req.Favor {
		id, err := findSolvable(pool, s)
		if err != nil {
			return jobs, errors.Wrapf(err, "favor %q", s)
		}
		jobs.Favor(id)
	}
	return jobs, nil
}

// findSolvable resolves a "name version" or "name version build" reference
// to the id of the exact candidate it names.
func findSolvable(pool *solver.Pool, ref string) (solver.SolvableId, error) {
	fields := strings.Fields(ref)
	if len(fields) < 2 || len(fields) > 3 {
		return 0, &solver.MalformedInputError{Detail: fmt.Sprintf("reference %q is not of the form \"name version [build]\"", ref)}
	}
	name := fields[0]
	v, err := match.ParseVersion(fields[1])
	if err != nil {
		return 0, &solver.MalformedInputError{Detail: err.Error()}
	}
	build := ""
	if len(fields) == 3 {
		build = fields[2]
	}
	nid, ok := pool.LookupName(name)
	if !ok {
		return 0, &solver.MalformedInputError{Detail: fmt.Sprintf("no package named %s in any channel", name)}
	}
	for _, id := range pool.SolvablesOf(nid) {
		s := pool.SolvableOf(id)
		if s.Build == build && s.Version != nil && s.Version.Compare(v) == 0 {
			return id, nil
		}
	}
	return 0, &solver.MalformedInputError{Detail: fmt.Sprintf("no candidate %s in any channel", ref)}
}
