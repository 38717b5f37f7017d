package caller

import "github.com/carbocation/fingerprint/ambiguity"

const (
	DefaultSuffix         = "_match"
	DefaultMergeKey       = "merge_key"
	DefaultSampleID       = "lims_id"
	DefaultBatchSeparator = ","
)

// Config carries everything the pipeline needs besides the joined table.
// Zero-valued fields take the defaults of DefaultConfig.
type Config struct {
	// Ambiguity may be nil, in which case only a score of exactly 0 is
	// ambiguous.
	Ambiguity    *ambiguity.Table
	Suppressions Suppressions

	// BatchSeparator splits string-valued batch fields and joins the
	// overlap_batch output.
	BatchSeparator string

	Suffix   string
	MergeKey string
	SampleID string

	Donor         string
	LibraryName   string
	LibraryDesign string
	Batches       string

	// Closest enables the closest-library search.
	Closest bool
}

func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults fills every empty setting from DefaultConfig.
func (c Config) WithDefaults() Config {
	if c.BatchSeparator == "" {
		c.BatchSeparator = DefaultBatchSeparator
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if c.MergeKey == "" {
		c.MergeKey = DefaultMergeKey
	}
	if c.SampleID == "" {
		c.SampleID = DefaultSampleID
	}
	if c.Donor == "" {
		c.Donor = "donor"
	}
	if c.LibraryName == "" {
		c.LibraryName = "library_name"
	}
	if c.LibraryDesign == "" {
		c.LibraryDesign = "library_design"
	}
	if c.Batches == "" {
		c.Batches = "batches"
	}

	return c
}
