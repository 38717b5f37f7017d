package caller

import (
	"testing"

	"github.com/carbocation/fingerprint/crosscheck"
	"github.com/google/go-cmp/cmp"
)

func stringTable(t *testing.T, columns []string, rows ...[]string) *crosscheck.Table {
	t.Helper()

	out := crosscheck.NewTable(columns)
	for _, row := range rows {
		vals := make([]crosscheck.Value, len(row))
		for i, v := range row {
			vals[i] = crosscheck.String(v)
		}
		if err := out.Append(vals); err != nil {
			t.Fatal(err)
		}
	}

	return out
}

func TestGenerateCalls(t *testing.T) {
	in := stringTable(t, []string{"library_name", "library_design"},
		[]string{"1", "WG"},
		[]string{"1", "WG"},
		[]string{"2", "WG"},
		[]string{"2", "WG"},
	)

	out, err := GenerateCalls(in, []string{"library_name", "library_design"}, []bool{false, true, false, false})
	if err != nil {
		t.Fatal(err)
	}

	expected := [][]string{
		{"library_name", "library_design", "swap_call"},
		{"1", "WG", "True"},
		{"2", "WG", "False"},
	}
	if diff := cmp.Diff(expected, out.Records()); diff != "" {
		t.Errorf("GenerateCalls mismatch (-expected +got):\n%s", diff)
	}
}

// Cell text that contains separator-like bytes must not merge groups.
func TestGenerateCallsKeepsDistinctTuples(t *testing.T) {
	in := stringTable(t, []string{"donor", "library_name"},
		[]string{"a\x1f1:b", "c"},
		[]string{"a", "b\x1f1:c"},
	)

	out, err := GenerateCalls(in, []string{"donor", "library_name"}, []bool{true, false})
	if err != nil {
		t.Fatal(err)
	}

	expected := [][]string{
		{"donor", "library_name", "swap_call"},
		{"a\x1f1:b", "c", "True"},
		{"a", "b\x1f1:c", "False"},
	}
	if diff := cmp.Diff(expected, out.Records()); diff != "" {
		t.Errorf("GenerateCalls mismatch (-expected +got):\n%s", diff)
	}
}

func TestGenerateCallsErrors(t *testing.T) {
	in := stringTable(t, []string{"library_name"}, []string{"1"})

	if _, err := GenerateCalls(in, []string{"library_name"}, []bool{true, false}); err == nil {
		t.Error("expected an error for a flag count that does not match the rows")
	}
	if _, err := GenerateCalls(in, []string{"lims_id"}, []bool{true}); err == nil {
		t.Error("expected an error for a missing key column")
	}
}

func TestGroupByColumns(t *testing.T) {
	columns := []string{
		crosscheck.LeftGroupValue, crosscheck.RightGroupValue, crosscheck.LODScore,
		"merge_key", "donor", "library_name", "batches", "lims_id",
		"merge_key_match", "donor_match", "library_name_match", "batches_match", "lims_id_match",
	}
	in := crosscheck.NewTable(columns)
	row := []crosscheck.Value{
		crosscheck.String("g1"), crosscheck.String("g2"), crosscheck.Number(3),
		crosscheck.String("g1"), crosscheck.String("D1"), crosscheck.String("L1"), crosscheck.List([]string{"B1"}), crosscheck.String("S1"),
		crosscheck.String("g2"), crosscheck.String("D1"), crosscheck.String("L2"), crosscheck.List([]string{"B1"}), crosscheck.String("S2"),
	}
	if err := in.Append(row); err != nil {
		t.Fatal(err)
	}

	got := GroupByColumns(in, "merge_key", "_match")
	if diff := cmp.Diff([]string{"donor", "library_name", "lims_id"}, got); diff != "" {
		t.Errorf("GroupByColumns mismatch (-expected +got):\n%s", diff)
	}
}

func TestGroupByColumnsStringBatches(t *testing.T) {
	// A delimiter-joined batch string is hashable and stays in the key.
	in := stringTable(t, []string{"library_name", "batches"}, []string{"L1", "B1,B2"})

	got := GroupByColumns(in, "merge_key", "_match")
	if diff := cmp.Diff([]string{"library_name", "batches"}, got); diff != "" {
		t.Errorf("GroupByColumns mismatch (-expected +got):\n%s", diff)
	}
}
