package caller

import "github.com/carbocation/fingerprint/ambiguity"

// IsAmbiguous reports whether the pair's score lies inside the ambiguous range
// for its two library designs, bounds included.
func IsAmbiguous(p Pair, t *ambiguity.Table) bool {
	return t.Contains(p.LODScore, p.LibraryDesign, p.LibraryDesignMatch)
}

// IsSwap reports whether the score contradicts the donors: a positive score
// between different donors, a negative score within one donor, or a score of
// exactly 0 that no ambiguous range covers. Ambiguous pairs are never swaps.
func IsSwap(p Pair, ambiguous bool) bool {
	expectedMatch := p.LODScore > 0 && p.SameDonor()
	expectedMismatch := p.LODScore < 0 && !p.SameDonor()

	return !(ambiguous || expectedMatch || expectedMismatch)
}

// MarkMatch reports positive evidence that the two libraries come from one
// individual, whether or not their donors agree. A library is never matched to
// itself.
func MarkMatch(p Pair, ambiguous bool) bool {
	if p.LibraryName == p.LibraryNameMatch {
		return false
	}

	return (p.LODScore > 0 && !ambiguous) || (p.SameDonor() && ambiguous)
}

// Flags holds the classification of every pair, indexed like the input.
type Flags struct {
	Ambiguous []bool
	Matched   []bool
	Swap      []bool

	// Suppressed counts rows whose swap call was cleared by the ignore lists.
	Suppressed int
}

// Classify applies IsAmbiguous, MarkMatch and IsSwap to every pair. Pairs
// covered by cfg.Suppressions are never swaps.
func Classify(pairs []Pair, cfg Config) Flags {
	f := Flags{
		Ambiguous: make([]bool, len(pairs)),
		Matched:   make([]bool, len(pairs)),
		Swap:      make([]bool, len(pairs)),
	}

	for i, p := range pairs {
		amb := IsAmbiguous(p, cfg.Ambiguity)
		f.Ambiguous[i] = amb
		f.Matched[i] = MarkMatch(p, amb)

		swap := IsSwap(p, amb)
		if swap && cfg.Suppressions.Suppressed(p) {
			swap = false
			f.Suppressed++
		}
		f.Swap[i] = swap
	}

	return f
}
