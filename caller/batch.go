package caller

import "sort"

// BatchOverlap returns the batches shared by the two libraries, sorted. It is
// empty, never nil, when they share none.
func BatchOverlap(p Pair) []string {
	match := make(map[string]struct{}, len(p.BatchesMatch))
	for _, b := range p.BatchesMatch {
		match[b] = struct{}{}
	}

	out := make([]string, 0)
	for _, b := range p.Batches {
		if _, ok := match[b]; ok {
			out = append(out, b)
			// Each shared batch is reported once.
			delete(match, b)
		}
	}
	sort.Strings(out)

	return out
}

func SameBatch(p Pair) bool {
	return len(BatchOverlap(p)) > 0
}

// BatchOverlaps applies BatchOverlap to every pair.
func BatchOverlaps(pairs []Pair) [][]string {
	out := make([][]string, len(pairs))
	for i, p := range pairs {
		out[i] = BatchOverlap(p)
	}

	return out
}
