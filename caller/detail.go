package caller

import (
	"fmt"
	"strings"

	"github.com/carbocation/fingerprint/crosscheck"
)

// Columns added to the detailed call table.
const (
	PairwiseSwap = "pairwise_swap"
	MatchCalled  = "match_called"
	SameBatchCol = "same_batch"
	OverlapBatch = "overlap_batch"
)

// GenerateDetailedCalls lists the pairwise evidence behind the calls: every row
// that is a match or a swap, in input order, with its flags and the swap_call
// of its query library. calls is the output of GenerateCalls and sampleID
// must identify exactly one of its rows per sample.
func GenerateDetailedCalls(t *crosscheck.Table, matched, swaps []bool, overlaps [][]string, calls *crosscheck.Table, suffix, sampleID, separator string) (*crosscheck.Table, error) {
	if len(matched) != t.Len() || len(swaps) != t.Len() || len(overlaps) != t.Len() {
		return nil, fmt.Errorf("got %d match flags, %d swap flags and %d overlaps for %d rows", len(matched), len(swaps), len(overlaps), t.Len())
	}

	callCol, err := calls.MustIndex(SwapCall)
	if err != nil {
		return nil, err
	}
	callID, err := calls.MustIndex(sampleID)
	if err != nil {
		return nil, fmt.Errorf("call table: %w", err)
	}

	// Many-to-one: each sample must have exactly one call.
	callBySample := make(map[string]crosscheck.Value, calls.Len())
	for _, row := range calls.Rows {
		id := row[callID].Key()
		if _, dup := callBySample[id]; dup {
			return nil, fmt.Errorf("%w: %s %q has more than one call", crosscheck.ErrCardinality, sampleID, row[callID].String())
		}
		callBySample[id] = row[callCol]
	}

	// Identity columns, then their matched counterparts.
	identity := make([]string, 0, len(calls.Columns))
	for _, col := range calls.Columns {
		if col != SwapCall {
			identity = append(identity, col)
		}
	}
	columns := append([]string{}, identity...)
	for _, col := range identity {
		if t.Index(col+suffix) >= 0 {
			columns = append(columns, col+suffix)
		}
	}
	columns = append(columns, crosscheck.LODScore, PairwiseSwap, MatchCalled, SameBatchCol, OverlapBatch, SwapCall)

	src := make([]int, 0, len(columns))
	for _, col := range columns[:len(columns)-5] {
		i, err := t.MustIndex(col)
		if err != nil {
			return nil, err
		}
		src = append(src, i)
	}
	rowID, err := t.MustIndex(sampleID)
	if err != nil {
		return nil, err
	}

	out := crosscheck.NewTable(columns)
	for r, row := range t.Rows {
		if !matched[r] && !swaps[r] {
			continue
		}

		call, ok := callBySample[row[rowID].Key()]
		if !ok {
			return nil, fmt.Errorf("%s %q has no call", sampleID, row[rowID].String())
		}

		vals := make([]crosscheck.Value, 0, len(columns))
		for _, i := range src {
			vals = append(vals, row[i])
		}
		vals = append(vals,
			crosscheck.Bool(swaps[r]),
			crosscheck.Bool(matched[r]),
			crosscheck.Bool(len(overlaps[r]) > 0),
			crosscheck.String(strings.Join(overlaps[r], separator)),
			call,
		)
		out.Rows = append(out.Rows, vals)
	}

	return out, nil
}
