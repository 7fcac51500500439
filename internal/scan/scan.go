// Package scan matches the file sets a batch run operates on. Matching is
// pure over basenames so the aggregation pipelines stay free of filesystem
// concerns and the suffix logic is testable with fixed name lists.
package scan

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Pair is a pathway file and its same-basename expression file.
type Pair struct {
	Base       string
	Pathway    string
	Expression string
}

// Triple extends Pair with the matching annotation file.
type Triple struct {
	Base       string
	Pathway    string
	Expression string
	Annotation string
}

// ListDir returns the names of the regular entries of dir, sorted
// lexicographically so batch output is reproducible across runs.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// MatchPairs pairs pathway files with expression files by shared basename.
// Unmatched files from either side come back as warnings for the caller to
// log; they are skipped, never fatal.
func MatchPairs(names []string, pwySuffix, rpkmSuffix string) (pairs []Pair, unmatched []string) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, pwySuffix):
			base := strings.TrimSuffix(n, pwySuffix)
			data := base + rpkmSuffix
			if !set[data] {
				unmatched = append(unmatched, fmt.Sprintf("missing RPKM data file: %s", data))
				continue
			}
			pairs = append(pairs, Pair{Base: base, Pathway: n, Expression: data})
		case strings.HasSuffix(n, rpkmSuffix):
			base := strings.TrimSuffix(n, rpkmSuffix)
			if !set[base+pwySuffix] {
				unmatched = append(unmatched, fmt.Sprintf("missing pathway file: %s", base+pwySuffix))
			}
		}
	}
	return pairs, unmatched
}

// MatchTriples matches pathway, expression and annotation files by shared
// basename. A pathway file missing either counterpart is reported and
// skipped.
func MatchTriples(names []string, pwySuffix, rpkmSuffix, annoSuffix string) (triples []Triple, unmatched []string) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, n := range names {
		if !strings.HasSuffix(n, pwySuffix) {
			continue
		}
		base := strings.TrimSuffix(n, pwySuffix)
		data := base + rpkmSuffix
		anno := base + annoSuffix
		if !set[data] {
			unmatched = append(unmatched, fmt.Sprintf("missing RPKM data file: %s", data))
			continue
		}
		if !set[anno] {
			unmatched = append(unmatched, fmt.Sprintf("missing annotation file: %s", anno))
			continue
		}
		triples = append(triples, Triple{Base: base, Pathway: n, Expression: data, Annotation: anno})
	}
	return triples, unmatched
}
