package caller

import (
	"strings"
	"testing"

	"github.com/carbocation/fingerprint/ambiguity"
	"github.com/carbocation/fingerprint/crosscheck"
)

// Three libraries: L1 and L2 from donor D1, L3 from donor D2. L2 and L3
// look like the same individual.
const fixtureMetadata = `[
  {"merge_key": "G1", "donor": "D1", "library_name": "L1", "library_design": "WG", "lims_id": "S1", "batches": ["B1", "B2"]},
  {"merge_key": "G2", "donor": "D1", "library_name": "L2", "library_design": "WG", "lims_id": "S2", "batches": ["B2"]},
  {"merge_key": "G3", "donor": "D2", "library_name": "L3", "library_design": "WT", "lims_id": "S3", "batches": ["B3"]}
]`

const fixtureMetrics = `## htsjdk.samtools.metrics.StringHeader
# CrosscheckFingerprints INPUT=[a.vcf.gz] CROSSCHECK_BY=READGROUP LOD_THRESHOLD=0.0
## htsjdk.samtools.metrics.StringHeader
# Started on: Mon Jan 01 00:00:00 EST 2024

## METRICS CLASS	picard.fingerprint.CrosscheckMetric
LEFT_GROUP_VALUE	RIGHT_GROUP_VALUE	RESULT	DATA_TYPE	LOD_SCORE	LOD_SCORE_TUMOR_NORMAL
G1	G1	EXPECTED_MATCH	READGROUP	50	50
G1	G2	EXPECTED_MATCH	READGROUP	30	30
G1	G3	INCONCLUSIVE	READGROUP	-5	-5
G2	G1	EXPECTED_MATCH	READGROUP	30	30
G2	G2	EXPECTED_MATCH	READGROUP	50	50
G2	G3	UNEXPECTED_MATCH	READGROUP	15	15
G3	G1	INCONCLUSIVE	READGROUP	-5	-5
G3	G2	UNEXPECTED_MATCH	READGROUP	15	15
G3	G3	EXPECTED_MATCH	READGROUP	50	50

`

func fixtureTable(t *testing.T) *crosscheck.Table {
	t.Helper()

	md, err := crosscheck.ReadMetadata(strings.NewReader(fixtureMetadata), DefaultMergeKey)
	if err != nil {
		t.Fatal(err)
	}

	metrics, err := crosscheck.ReadMetrics(strings.NewReader(fixtureMetrics))
	if err != nil {
		t.Fatal(err)
	}

	table, _, err := crosscheck.Join(metrics, md, DefaultSuffix)
	if err != nil {
		t.Fatal(err)
	}

	return table
}

func fixtureConfig(t *testing.T) Config {
	t.Helper()

	amb, err := ambiguity.New([]ambiguity.Rule{
		{Pair: []string{"WG", "WT"}, Upper: 10, Lower: -10},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Ambiguity = amb

	return cfg
}
