package caller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/fingerprint/crosscheck"
)

const SwapCall = "swap_call"

// GroupByColumns picks the columns that name one library: every hashable
// column except the metrics columns, the merge key, and the columns that
// describe the matched library.
func GroupByColumns(t *crosscheck.Table, mergeKey, suffix string) []string {
	out := make([]string, 0, len(t.Columns))

	for i, col := range t.Columns {
		switch {
		case col == crosscheck.LeftGroupValue, col == crosscheck.RightGroupValue, col == crosscheck.LODScore:
			continue
		case col == mergeKey:
			continue
		case suffix != "" && strings.HasSuffix(col, suffix):
			continue
		case !t.Hashable(i):
			continue
		}
		out = append(out, col)
	}

	return out
}

// groupKey length-prefixes every part, so no cell text can run into the next.
func groupKey(row []crosscheck.Value, idx []int) string {
	var b strings.Builder
	for _, i := range idx {
		k := row[i].Key()
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}

	return b.String()
}

// GenerateCalls collapses the pairwise rows to one row per distinct value of
// keys, in order of first appearance. swap_call is true if any row of the
// group is a swap.
func GenerateCalls(t *crosscheck.Table, keys []string, swaps []bool) (*crosscheck.Table, error) {
	if len(swaps) != t.Len() {
		return nil, fmt.Errorf("got %d swap flags for %d rows", len(swaps), t.Len())
	}

	idx := make([]int, len(keys))
	for n, key := range keys {
		i, err := t.MustIndex(key)
		if err != nil {
			return nil, err
		}
		if !t.Hashable(i) {
			return nil, fmt.Errorf("column %q cannot be used as a grouping key", key)
		}
		idx[n] = i
	}

	out := crosscheck.NewTable(append(append([]string{}, keys...), SwapCall))
	called := make([]bool, 0)
	groups := make(map[string]int)

	for r, row := range t.Rows {
		k := groupKey(row, idx)
		g, seen := groups[k]
		if !seen {
			g = len(out.Rows)
			groups[k] = g

			vals := make([]crosscheck.Value, 0, len(idx)+1)
			for _, i := range idx {
				vals = append(vals, row[i])
			}
			out.Rows = append(out.Rows, vals)
			called = append(called, false)
		}
		called[g] = called[g] || swaps[r]
	}

	for g := range out.Rows {
		out.Rows[g] = append(out.Rows[g], crosscheck.Bool(called[g]))
	}

	return out, nil
}
