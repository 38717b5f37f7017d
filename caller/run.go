// Package caller turns joined CrosscheckFingerprints comparisons into swap
// calls: each directed pair is classified as ambiguous, matched and/or a
// swap, and the swaps are rolled up into one call per sample.
package caller

import (
	"fmt"

	"github.com/carbocation/fingerprint/crosscheck"
)

// Result holds the outputs of one run. Flags and Overlaps are indexed like
// the rows of the input table.
type Result struct {
	Pairs    []Pair
	Flags    Flags
	Overlaps [][]string

	GroupBy  []string
	Calls    *crosscheck.Table
	Detailed *crosscheck.Table

	// Nil unless Config.Closest is set.
	Closest []ClosestMatch
}

// Run classifies every row of a joined table and assembles the call and
// detailed call tables. The input table is not modified.
func Run(t *crosscheck.Table, cfg Config) (*Result, error) {
	cfg = cfg.WithDefaults()

	pairs, err := Pairs(t, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading pairs: %w", err)
	}

	res := &Result{
		Pairs:    pairs,
		Flags:    Classify(pairs, cfg),
		Overlaps: BatchOverlaps(pairs),
		GroupBy:  GroupByColumns(t, cfg.MergeKey, cfg.Suffix),
	}

	res.Calls, err = GenerateCalls(t, res.GroupBy, res.Flags.Swap)
	if err != nil {
		return nil, fmt.Errorf("generating calls: %w", err)
	}

	res.Detailed, err = GenerateDetailedCalls(t, res.Flags.Matched, res.Flags.Swap, res.Overlaps, res.Calls, cfg.Suffix, cfg.SampleID, cfg.BatchSeparator)
	if err != nil {
		return nil, fmt.Errorf("generating detailed calls: %w", err)
	}

	if cfg.Closest {
		res.Closest = Closest(pairs, res.Flags.Ambiguous)
	}

	return res, nil
}
