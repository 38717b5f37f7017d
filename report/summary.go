package report

import (
	"fmt"

	"github.com/carbocation/fingerprint/caller"
	"github.com/montanaflynn/stats"
)

// LODStats describes the scores of one class of pairwise rows.
type LODStats struct {
	N      int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

func (s LODStats) String() string {
	if s.N == 0 {
		return "N=0"
	}

	return fmt.Sprintf("N=%d mean=%.3f median=%.3f min=%.3f max=%.3f", s.N, s.Mean, s.Median, s.Min, s.Max)
}

type Summary struct {
	Rows       int
	Ambiguous  LODStats
	Matched    LODStats
	Swaps      LODStats
	Suppressed int

	Samples   int
	SwapCalls int
}

// Summarize counts the classes of a run and describes their scores.
func Summarize(res *caller.Result) (Summary, error) {
	out := Summary{
		Rows:       len(res.Pairs),
		Suppressed: res.Flags.Suppressed,
	}

	var amb, matched, swaps stats.Float64Data
	for i, p := range res.Pairs {
		if res.Flags.Ambiguous[i] {
			amb = append(amb, p.LODScore)
		}
		if res.Flags.Matched[i] {
			matched = append(matched, p.LODScore)
		}
		if res.Flags.Swap[i] {
			swaps = append(swaps, p.LODScore)
		}
	}

	var err error
	if out.Ambiguous, err = describe(amb); err != nil {
		return out, err
	}
	if out.Matched, err = describe(matched); err != nil {
		return out, err
	}
	if out.Swaps, err = describe(swaps); err != nil {
		return out, err
	}

	if res.Calls != nil {
		out.Samples = res.Calls.Len()
		col := res.Calls.Index(caller.SwapCall)
		for _, row := range res.Calls.Rows {
			if col < 0 {
				break
			}
			if called, ok := row[col].Bool(); ok && called {
				out.SwapCalls++
			}
		}
	}

	return out, nil
}

func describe(data stats.Float64Data) (LODStats, error) {
	out := LODStats{N: data.Len()}
	if out.N == 0 {
		return out, nil
	}

	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, err
	}
	if out.Median, err = data.Median(); err != nil {
		return out, err
	}
	if out.Min, err = data.Min(); err != nil {
		return out, err
	}
	if out.Max, err = data.Max(); err != nil {
		return out, err
	}

	return out, nil
}

// Lines renders the summary for the log.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("%d pairwise comparisons", s.Rows),
		fmt.Sprintf("Ambiguous: %s", s.Ambiguous),
		fmt.Sprintf("Matched: %s", s.Matched),
		fmt.Sprintf("Pairwise swaps: %s (%d more suppressed by ignore lists)", s.Swaps, s.Suppressed),
		fmt.Sprintf("%d of %d samples called as swaps", s.SwapCalls, s.Samples),
	}
}
