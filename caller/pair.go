package caller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carbocation/fingerprint/crosscheck"
)

// Pair is the part of one pairwise row that the classifier looks at: the
// query library, the library it was compared against, and their LOD score.
type Pair struct {
	LibraryName        string
	LibraryNameMatch   string
	LibraryDesign      string
	LibraryDesignMatch string
	Donor              crosscheck.Value
	DonorMatch         crosscheck.Value

	// Sorted, without duplicates.
	Batches      []string
	BatchesMatch []string

	LODScore float64
}

// SameDonor is false if either donor is unknown.
func (p Pair) SameDonor() bool {
	return p.Donor.Equal(p.DonorMatch)
}

// Pairs reads one Pair per row of a joined table. The batch column is
// optional; without it every batch set is empty.
func Pairs(t *crosscheck.Table, cfg Config) ([]Pair, error) {
	cfg = cfg.WithDefaults()

	lod, err := t.MustIndex(crosscheck.LODScore)
	if err != nil {
		return nil, err
	}

	type side struct{ name, design, donor, batches int }
	resolve := func(suffix string) (side, error) {
		var s side
		var err error
		if s.name, err = t.MustIndex(cfg.LibraryName + suffix); err != nil {
			return s, err
		}
		if s.design, err = t.MustIndex(cfg.LibraryDesign + suffix); err != nil {
			return s, err
		}
		if s.donor, err = t.MustIndex(cfg.Donor + suffix); err != nil {
			return s, err
		}
		s.batches = t.Index(cfg.Batches + suffix)
		return s, nil
	}

	query, err := resolve("")
	if err != nil {
		return nil, err
	}
	match, err := resolve(cfg.Suffix)
	if err != nil {
		return nil, err
	}

	out := make([]Pair, len(t.Rows))
	for i, row := range t.Rows {
		score, ok := row[lod].Float()
		if !ok {
			return nil, fmt.Errorf("row %d: %s %q is not a number", i, crosscheck.LODScore, row[lod].String())
		}

		p := Pair{
			LibraryName:        row[query.name].String(),
			LibraryNameMatch:   row[match.name].String(),
			LibraryDesign:      row[query.design].String(),
			LibraryDesignMatch: row[match.design].String(),
			Donor:              row[query.donor],
			DonorMatch:         row[match.donor],
			Batches:            []string{},
			BatchesMatch:       []string{},
			LODScore:           score,
		}
		if query.batches >= 0 {
			p.Batches = ParseBatches(row[query.batches], cfg.BatchSeparator)
		}
		if match.batches >= 0 {
			p.BatchesMatch = ParseBatches(row[match.batches], cfg.BatchSeparator)
		}

		out[i] = p
	}

	return out, nil
}

// ParseBatches turns a batch cell into a sorted set of batch labels. Lists
// give their members and strings are split on sep. Empty labels are dropped.
func ParseBatches(v crosscheck.Value, sep string) []string {
	var raw []string

	switch v.Kind {
	case crosscheck.KindNull:
		return []string{}
	case crosscheck.KindList:
		raw = v.Items()
	default:
		raw = strings.Split(v.String(), sep)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Strings(out)

	return out
}
