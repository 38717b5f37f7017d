package caller

import (
	"testing"

	"github.com/carbocation/fingerprint/crosscheck"
	"github.com/google/go-cmp/cmp"
)

func TestSameBatch(t *testing.T) {
	pairs := []Pair{
		{Batches: []string{}, BatchesMatch: []string{"1"}},
		{Batches: []string{"1"}, BatchesMatch: []string{"2"}},
		{Batches: []string{"1", "2"}, BatchesMatch: []string{"1"}},
	}

	got := make([]bool, len(pairs))
	for i, p := range pairs {
		got[i] = SameBatch(p)
	}

	if diff := cmp.Diff([]bool{false, false, true}, got); diff != "" {
		t.Errorf("SameBatch mismatch (-expected +got):\n%s", diff)
	}
}

func TestBatchOverlap(t *testing.T) {
	for _, v := range []struct {
		batches, batchesMatch []string
		expected              []string
	}{
		{nil, nil, []string{}},
		{[]string{"a"}, nil, []string{}},
		{[]string{"c", "a", "b"}, []string{"b", "c", "d"}, []string{"b", "c"}},
		{[]string{"a", "a"}, []string{"a"}, []string{"a"}},
	} {
		p := Pair{Batches: v.batches, BatchesMatch: v.batchesMatch}
		got := BatchOverlap(p)
		if got == nil {
			t.Errorf("BatchOverlap(%v, %v) returned nil", v.batches, v.batchesMatch)
		}
		if diff := cmp.Diff(v.expected, got); diff != "" {
			t.Errorf("BatchOverlap(%v, %v) mismatch (-expected +got):\n%s", v.batches, v.batchesMatch, diff)
		}
		if SameBatch(p) != (len(got) > 0) {
			t.Errorf("SameBatch disagrees with BatchOverlap for %+v", v)
		}
	}
}

func TestParseBatches(t *testing.T) {
	for _, v := range []struct {
		value    crosscheck.Value
		expected []string
	}{
		{crosscheck.Null(), []string{}},
		{crosscheck.String(""), []string{}},
		{crosscheck.String("B2,B1, B2"), []string{"B1", "B2"}},
		{crosscheck.List([]string{"x", "a"}), []string{"a", "x"}},
		{crosscheck.Number(7), []string{"7"}},
	} {
		if diff := cmp.Diff(v.expected, ParseBatches(v.value, ",")); diff != "" {
			t.Errorf("ParseBatches(%s) mismatch (-expected +got):\n%s", v.value, diff)
		}
	}
}
