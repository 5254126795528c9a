// core/resolve/convention.go
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"peflow-core/design"
	"peflow-core/report"
)

// Convention is one identifier naming form, expressed as an anchored regular
// expression with named groups. Groups "pbs" and "rtt" are mandatory;
// "editor", "rep" and "drug" are optional metadata.
type Convention struct {
	Name    string
	Pattern string
	re      *regexp.Regexp
}

// New compiles a convention and verifies the mandatory groups are present.
func New(name, pattern string) (Convention, error) {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Convention{}, fmt.Errorf("convention %s: %w", name, err)
	}
	groups := map[string]bool{}
	for _, g := range re.SubexpNames() {
		groups[g] = true
	}
	if !groups["pbs"] || !groups["rtt"] {
		return Convention{}, fmt.Errorf("convention %s: pattern must name groups (?P<pbs>) and (?P<rtt>)", name)
	}
	return Convention{Name: name, Pattern: pattern, re: re}, nil
}

func MustNew(name, pattern string) Convention {
	c, err := New(name, pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Defaults reproduces the lab's established sample naming forms, tried in
// order: editor with P/R, editor with R/P swapped, editor-less P/R and R/P,
// drug-suffixed with and without an explicit replicate. Locus prefixes may
// carry digits (HEK3, RNF2); the drug forms also allow underscores there.
func Defaults() []Convention {
	return []Convention{
		MustNew("editor-pr", `[a-zA-Z][a-zA-Z0-9]*(?P<editor>PE\w+)_P(?P<pbs>\d+)_R(?P<rtt>\d+)_[Rr]ep(?P<rep>\d+)`),
		MustNew("editor-rp", `[a-zA-Z][a-zA-Z0-9]*(?P<editor>PE\w+)_R(?P<rtt>\d+)_P(?P<pbs>\d+)_[Rr]ep(?P<rep>\d+)`),
		MustNew("plain-pr", `[a-zA-Z][a-zA-Z0-9]*_P(?P<pbs>\d+)_R(?P<rtt>\d+)_[Rr]ep(?P<rep>\d+)`),
		MustNew("plain-rp", `[a-zA-Z][a-zA-Z0-9]*_R(?P<rtt>\d+)_P(?P<pbs>\d+)_[Rr]ep(?P<rep>\d+)`),
		MustNew("drug-rep", `[a-zA-Z][a-zA-Z0-9_]*(?P<editor>PE\w+)_P(?P<pbs>\d+)R(?P<rtt>\d+)_(?P<drug>[a-zA-Z]+)_[Rr]ep(?P<rep>\d+)`),
		MustNew("drug", `[a-zA-Z][a-zA-Z0-9_]*(?P<editor>PE\w+)_P(?P<pbs>\d+)R(?P<rtt>\d+)_(?P<drug>[a-zA-Z]+)$`),
	}
}

// Meta is sample metadata carried by a naming convention beyond the matching
// key: which editor was used, the replicate number, and an optional drug tag.
type Meta struct {
	Editor    string
	Replicate int
	Drug      string
}

// Candidate is one possible design key derived from a sample identifier.
type Candidate struct {
	Key  design.Key
	Meta Meta
}

// Parse applies one convention to a raw sample identifier.
func (c Convention) Parse(sample string) (Candidate, bool) {
	m := c.re.FindStringSubmatch(sample)
	if m == nil {
		return Candidate{}, false
	}
	var cand Candidate
	cand.Meta.Replicate = 1
	for i, g := range c.re.SubexpNames() {
		if i == 0 || m[i] == "" {
			continue
		}
		switch g {
		case "pbs":
			cand.Key.PBS, _ = strconv.Atoi(m[i])
		case "rtt":
			cand.Key.RTT, _ = strconv.Atoi(m[i])
		case "rep":
			cand.Meta.Replicate, _ = strconv.Atoi(m[i])
		case "editor":
			cand.Meta.Editor = m[i]
		case "drug":
			// An explicit control tag means "no drug".
			if !strings.EqualFold(m[i], "ctrl") {
				cand.Meta.Drug = m[i]
			}
		}
	}
	return cand, true
}

// ParseSample derives candidate keys from a raw identifier using every
// matching convention, deduplicated by key, in convention order. An
// identifier no convention can parse is invalid.
func ParseSample(sample string, convs []Convention) ([]Candidate, error) {
	var (
		out  []Candidate
		seen = map[design.Key]bool{}
	)
	for _, c := range convs {
		cand, ok := c.Parse(sample)
		if !ok || seen[cand.Key] {
			continue
		}
		seen[cand.Key] = true
		out = append(out, cand)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q matches no naming convention", report.ErrInvalidIdentifier, sample)
	}
	return out, nil
}

// looseKey finds bare P<n> / R<n> tokens anywhere in a name. Used by the
// runsheet builder, whose sample names only need to carry the matching key.
var (
	loosePBS = regexp.MustCompile(`P(\d+)`)
	looseRTT = regexp.MustCompile(`R(\d+)`)
)

func LooseKey(name string) (design.Key, bool) {
	p := loosePBS.FindStringSubmatch(name)
	r := looseRTT.FindStringSubmatch(name)
	if p == nil || r == nil {
		return design.Key{}, false
	}
	pbs, _ := strconv.Atoi(p[1])
	rtt, _ := strconv.Atoi(r[1])
	return design.Key{PBS: pbs, RTT: rtt}, true
}
