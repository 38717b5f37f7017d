package caller

import (
	"math"
	"sort"

	"github.com/carbocation/fingerprint/crosscheck"
)

// ClosestMatch names, for one query library, the highest scoring library from
// the same donor, separately for unambiguous and ambiguous comparisons.
type ClosestMatch struct {
	LibraryName string

	Library string
	LOD     float64
	Found   bool

	AmbiguousLibrary string
	AmbiguousLOD     float64
	AmbiguousFound   bool
}

// Closest finds each query library's closest same-donor library. Libraries
// are reported in order of first appearance.
func Closest(pairs []Pair, ambiguous []bool) []ClosestMatch {
	order := make([]string, 0)
	candidates := make(map[string][]int)
	for i, p := range pairs {
		if _, seen := candidates[p.LibraryName]; !seen {
			order = append(order, p.LibraryName)
			candidates[p.LibraryName] = []int{}
		}
		if p.LibraryName == p.LibraryNameMatch {
			continue
		}
		candidates[p.LibraryName] = append(candidates[p.LibraryName], i)
	}

	out := make([]ClosestMatch, 0, len(order))
	for _, lib := range order {
		rows := candidates[lib]
		sort.SliceStable(rows, func(a, b int) bool {
			return scoreBefore(pairs[rows[a]].LODScore, pairs[rows[b]].LODScore)
		})

		cm := ClosestMatch{LibraryName: lib}
		for _, i := range rows {
			if cm.Found && cm.AmbiguousFound {
				break
			}

			p := pairs[i]
			if !p.SameDonor() {
				continue
			}

			if ambiguous[i] {
				if !cm.AmbiguousFound {
					cm.AmbiguousLibrary, cm.AmbiguousLOD, cm.AmbiguousFound = p.LibraryNameMatch, p.LODScore, true
				}
				continue
			}

			if !cm.Found {
				cm.Library, cm.LOD, cm.Found = p.LibraryNameMatch, p.LODScore, true
			}
		}
		out = append(out, cm)
	}

	return out
}

// scoreBefore orders scores from highest to lowest with NaN last.
func scoreBefore(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	if math.IsNaN(a) {
		return false
	}

	return a > b
}

// ClosestTable lays the search results out for writing.
func ClosestTable(matches []ClosestMatch) *crosscheck.Table {
	out := crosscheck.NewTable([]string{
		"library_name",
		"closest_library",
		"closest_lod",
		"closest_ambiguous_library",
		"closest_ambiguous_lod",
	})

	blank := crosscheck.Null()
	for _, cm := range matches {
		row := []crosscheck.Value{crosscheck.String(cm.LibraryName), blank, blank, blank, blank}
		if cm.Found {
			row[1] = crosscheck.String(cm.Library)
			row[2] = crosscheck.Number(cm.LOD)
		}
		if cm.AmbiguousFound {
			row[3] = crosscheck.String(cm.AmbiguousLibrary)
			row[4] = crosscheck.Number(cm.AmbiguousLOD)
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}
