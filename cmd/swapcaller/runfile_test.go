package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestParseRunFileFromPath(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "run.yaml", `
metadata: /data/metadata.json
crosscheck:
  - /data/a.crosscheck_metrics
  - gs://bucket/b.crosscheck_metrics.gz
ambiguous_lod: /data/ambiguous_lod.json
calls: /out/calls.csv
detailed: /out/detailed.csv
separator: ";"
columns:
  donor: individual
`)
	jsonPath := writeFile(t, dir, "run.json", `{
  "metadata": "/data/metadata.json",
  "crosscheck": ["/data/a.crosscheck_metrics", "gs://bucket/b.crosscheck_metrics.gz"],
  "ambiguous_lod": "/data/ambiguous_lod.json",
  "calls": "/out/calls.csv",
  "detailed": "/out/detailed.csv",
  "separator": ";",
  "columns": {"donor": "individual"}
}`)

	for _, path := range []string{yamlPath, jsonPath} {
		run, err := ParseRunFileFromPath(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}

		expected := RunFile{
			ConfigPath:   path,
			Metadata:     "/data/metadata.json",
			Crosscheck:   []string{"/data/a.crosscheck_metrics", "gs://bucket/b.crosscheck_metrics.gz"},
			AmbiguousLOD: "/data/ambiguous_lod.json",
			Calls:        "/out/calls.csv",
			Detailed:     "/out/detailed.csv",
			Separator:    ";",
		}
		expected.Columns.Donor = "individual"

		if diff := cmp.Diff(expected, run); diff != "" {
			t.Errorf("%s mismatch (-expected +got):\n%s", path, diff)
		}
		if !run.usesGoogleStorage() {
			t.Errorf("%s: expected the gs:// input to be noticed", path)
		}
	}
}

func TestParseRunFileUnknownField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "metadata: a.json\nmetdata: b.json\n")

	if _, err := ParseRunFileFromPath(path); err == nil {
		t.Error("expected an error for a misspelled setting")
	}
}

func TestMerge(t *testing.T) {
	file := RunFile{
		Metadata: "file.json",
		Calls:    "file_calls.csv",
		Detailed: "file_detailed.csv",
	}
	file.Columns.Donor = "individual"

	got := merge(file, RunFile{Calls: "flag_calls.csv", SampleID: "sample"})

	expected := RunFile{
		Metadata: "file.json",
		Calls:    "flag_calls.csv",
		Detailed: "file_detailed.csv",
		SampleID: "sample",
	}
	expected.Columns.Donor = "individual"

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("merge mismatch (-expected +got):\n%s", diff)
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()

	run := RunFile{
		Metadata: writeFile(t, dir, "metadata.json", `[
  {"merge_key": "G1", "donor": "D1", "library_name": "L1", "library_design": "WG", "lims_id": "S1", "batches": ["B1"]},
  {"merge_key": "G2", "donor": "D2", "library_name": "L2", "library_design": "WG", "lims_id": "S2", "batches": ["B1"]}
]`),
		Crosscheck: []string{writeFile(t, dir, "a.crosscheck_metrics", `# CrosscheckFingerprints
LEFT_GROUP_VALUE	RIGHT_GROUP_VALUE	LOD_SCORE
G1	G1	40
G1	G2	25
G2	G1	25
G2	G2	40
`)},
		IgnorePair: writeFile(t, dir, "ignore_pair.json", `[]`),
		Calls:      filepath.Join(dir, "calls.csv"),
		Detailed:   filepath.Join(dir, "detailed.csv"),
		Closest:    filepath.Join(dir, "closest.csv"),
	}

	if err := Execute(context.Background(), run); err != nil {
		t.Fatal(err)
	}

	calls, err := os.ReadFile(run.Calls)
	if err != nil {
		t.Fatal(err)
	}
	expected := `donor,library_name,library_design,lims_id,swap_call
D1,L1,WG,S1,True
D2,L2,WG,S2,True
`
	if string(calls) != expected {
		t.Errorf("calls:\n%s\nexpected:\n%s", calls, expected)
	}

	detailed, err := os.ReadFile(run.Detailed)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(detailed)), "\n"); len(lines) != 3 {
		t.Errorf("expected a header and 2 detailed rows, got:\n%s", detailed)
	}

	if _, err := os.Stat(run.Closest); err != nil {
		t.Error(err)
	}
}
