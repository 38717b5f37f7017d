package crosscheck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCardinality marks a join key that matched more than one record on the
// side that must be unique.
var ErrCardinality = errors.New("join cardinality violation")

// JoinStats counts what happened to the metrics rows during Join.
type JoinStats struct {
	Metrics      int
	Joined       int
	MissingLeft  int
	MissingRight int
}

// Join attaches metadata to both libraries of every metric. The query
// library's fields keep their names; the matched library's fields are
// suffixed. Metrics with no metadata on either side are dropped.
func Join(metrics []Metric, md *Metadata, suffix string) (*Table, JoinStats, error) {
	stats := JoinStats{Metrics: len(metrics)}

	if suffix == "" {
		return nil, stats, fmt.Errorf("join suffix must not be empty")
	}

	columns := []string{LeftGroupValue, RightGroupValue, LODScore}
	for _, col := range md.Columns {
		if col == LeftGroupValue || col == RightGroupValue || col == LODScore {
			return nil, stats, fmt.Errorf("metadata field %q collides with a metrics column", col)
		}
		if strings.HasSuffix(col, suffix) {
			return nil, stats, fmt.Errorf("metadata field %q already ends with %q", col, suffix)
		}
		columns = append(columns, col)
	}
	for _, col := range md.Columns {
		columns = append(columns, col+suffix)
	}

	out := NewTable(columns)
	out.Rows = make([][]Value, 0, len(metrics))

	for _, m := range metrics {
		left, ok := md.Lookup(m.LeftGroupValue)
		if !ok {
			stats.MissingLeft++
			continue
		}
		right, ok := md.Lookup(m.RightGroupValue)
		if !ok {
			stats.MissingRight++
			continue
		}

		row := make([]Value, 0, len(columns))
		row = append(row, String(m.LeftGroupValue), String(m.RightGroupValue), Number(m.LODScore))
		row = append(row, left...)
		row = append(row, right...)
		out.Rows = append(out.Rows, row)
	}
	stats.Joined = len(out.Rows)

	return out, stats, nil
}
