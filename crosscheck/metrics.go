package crosscheck

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/fingerprint"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Metric is one directed comparison from a CrosscheckFingerprints metrics
// file. Other columns of the file are ignored.
type Metric struct {
	LeftGroupValue  string
	RightGroupValue string
	LODScore        float64
}

// metricRecord is a Metric as written. The score stays text so that a blank
// cell is an error rather than a zero.
type metricRecord struct {
	LeftGroupValue  string `csv:"LEFT_GROUP_VALUE"`
	RightGroupValue string `csv:"RIGHT_GROUP_VALUE"`
	LODScore        string `csv:"LOD_SCORE"`
}

var requiredMetricColumns = []string{LeftGroupValue, RightGroupValue, LODScore}

// ReadMetrics parses a CrosscheckFingerprints metrics file. Lines starting with
// # and blank lines are skipped; the first remaining line is the header. A
// blank or non-numeric LOD_SCORE is an error.
func ReadMetrics(r io.Reader) ([]Metric, error) {
	var body bytes.Buffer

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		body.Write(line)
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if body.Len() == 0 {
		return nil, pfx.Err(fmt.Errorf("no header line found"))
	}

	header, _, _ := strings.Cut(body.String(), "\n")
	delim, err := pickDelimiter(header, fingerprint.DetermineDelimiter(bytes.NewReader(body.Bytes())))
	if err != nil {
		return nil, pfx.Err(err)
	}

	cr := csv.NewReader(bytes.NewReader(body.Bytes()))
	cr.Comma = delim
	cr.LazyQuotes = true

	records := []metricRecord{}
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, pfx.Err(err)
	}

	metrics := make([]Metric, 0, len(records))
	for i, rec := range records {
		raw := strings.TrimSpace(rec.LODScore)
		if raw == "" {
			return nil, pfx.Err(fmt.Errorf("record %d (%s vs %s): %s is blank", i+1, rec.LeftGroupValue, rec.RightGroupValue, LODScore))
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("record %d (%s vs %s): %s %q is not a number", i+1, rec.LeftGroupValue, rec.RightGroupValue, LODScore, rec.LODScore))
		}
		metrics = append(metrics, Metric{
			LeftGroupValue:  rec.LeftGroupValue,
			RightGroupValue: rec.RightGroupValue,
			LODScore:        score,
		})
	}

	return metrics, nil
}

// pickDelimiter prefers the detected delimiter, falling back to tab and then
// comma, taking the first that splits the header into the required columns.
func pickDelimiter(header string, detected rune) (rune, error) {
	header = strings.TrimRight(header, "\r")

	for _, delim := range []rune{detected, '\t', ','} {
		if hasColumns(strings.Split(header, string(delim)), requiredMetricColumns) {
			return delim, nil
		}
	}

	return 0, fmt.Errorf("header is missing one of %v: %q", requiredMetricColumns, header)
}

func hasColumns(header, required []string) bool {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}

	for _, col := range required {
		if _, ok := present[col]; !ok {
			return false
		}
	}

	return true
}
