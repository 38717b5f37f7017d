// swapcaller calls sample swaps from GATK CrosscheckFingerprints output. Each
// pairwise comparison is checked against the donors recorded in the metadata;
// a sample is called as a swap if any of its comparisons contradicts them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/fingerprint"
	"github.com/carbocation/fingerprint/ambiguity"
	"github.com/carbocation/fingerprint/caller"
	"github.com/carbocation/fingerprint/compileinfo"
	"github.com/carbocation/fingerprint/crosscheck"
	"github.com/carbocation/fingerprint/report"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentReads = 4

func main() {
	var (
		configPath string
		version    bool
		run        RunFile
	)

	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.StringVar(&configPath, "config", "", "Optional. YAML or JSON file with any of the settings below. Flags override it.")
	flag.StringVar(&run.Metadata, "metadata", "", "JSON array of library records, each with a merge_key matching LEFT_GROUP_VALUE/RIGHT_GROUP_VALUE.")
	flag.StringVar(&run.AmbiguousLOD, "ambiguous-lod", "", "Optional. JSON file describing what LOD range is inconclusive for a given library design pairing.")
	flag.StringVar(&run.IgnoreLibrary, "ignore-library", "", "Optional. JSON list of known false positive libraries to ignore for swap calling.")
	flag.StringVar(&run.IgnorePair, "ignore-pair", "", "Optional. JSON list of library pairs, each a known false positive pair to ignore for swap calling.")
	flag.StringVar(&run.Calls, "calls", "", "Output CSV with one swap call per sample.")
	flag.StringVar(&run.Detailed, "detailed", "", "Output CSV with the pairwise evidence behind the calls.")
	flag.StringVar(&run.Closest, "closest", "", "Optional. Output CSV naming each library's closest same-donor library.")
	flag.StringVar(&run.Separator, "separator", "", fmt.Sprintf("Separator for batch lists (default %q).", caller.DefaultBatchSeparator))
	flag.StringVar(&run.SampleID, "sample-id", "", fmt.Sprintf("Column that identifies one sample (default %q).", caller.DefaultSampleID))
	flag.StringVar(&run.MergeKey, "merge-key", "", fmt.Sprintf("Metadata field joined to the crosscheck group values (default %q).", caller.DefaultMergeKey))
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] crosscheck_metrics.txt [...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if version {
		fmt.Println(compileinfo.Get())
		return
	}

	if configPath != "" {
		fromFile, err := ParseRunFileFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
		run = merge(fromFile, run)
	}
	if flag.NArg() > 0 {
		run.Crosscheck = flag.Args()
	}

	if run.Metadata == "" || run.Calls == "" || run.Detailed == "" || len(run.Crosscheck) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := Execute(context.Background(), run); err != nil {
		log.Fatalln(err)
	}
}

// merge overlays the non-empty settings of flags onto the run file.
func merge(file, flags RunFile) RunFile {
	out := file
	override(&out.Metadata, flags.Metadata)
	override(&out.AmbiguousLOD, flags.AmbiguousLOD)
	override(&out.IgnoreLibrary, flags.IgnoreLibrary)
	override(&out.IgnorePair, flags.IgnorePair)
	override(&out.Calls, flags.Calls)
	override(&out.Detailed, flags.Detailed)
	override(&out.Closest, flags.Closest)
	override(&out.Separator, flags.Separator)
	override(&out.SampleID, flags.SampleID)
	override(&out.MergeKey, flags.MergeKey)

	return out
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func Execute(ctx context.Context, run RunFile) error {
	log.Println(compileinfo.Get())

	var client *storage.Client
	if run.usesGoogleStorage() {
		var err error
		if client, err = storage.NewClient(ctx); err != nil {
			return fmt.Errorf("creating storage client: %w", err)
		}
		defer client.Close()
	}

	cfg := caller.Config{
		BatchSeparator: run.Separator,
		SampleID:       run.SampleID,
		MergeKey:       run.MergeKey,
		Donor:          run.Columns.Donor,
		LibraryName:    run.Columns.LibraryName,
		LibraryDesign:  run.Columns.LibraryDesign,
		Batches:        run.Columns.Batches,
		Closest:        run.Closest != "",
	}
	cfg = cfg.WithDefaults()

	table, err := load(ctx, client, run, cfg)
	if err != nil {
		return err
	}

	if cfg.Ambiguity, err = ambiguity.Load(run.AmbiguousLOD); err != nil {
		return fmt.Errorf("loading ambiguous LOD ranges: %w", err)
	}
	log.Printf("Loaded %d ambiguous LOD ranges\n", cfg.Ambiguity.Len())

	if cfg.Suppressions, err = caller.LoadSuppressions(run.IgnoreLibrary, run.IgnorePair); err != nil {
		return fmt.Errorf("loading ignore lists: %w", err)
	}

	res, err := caller.Run(table, cfg)
	if err != nil {
		return err
	}
	log.Printf("Grouping samples by %v\n", res.GroupBy)

	if err := report.WriteFile(run.Calls, res.Calls); err != nil {
		return fmt.Errorf("writing calls: %w", err)
	}
	log.Printf("Wrote %d calls to %s\n", res.Calls.Len(), run.Calls)

	if err := report.WriteFile(run.Detailed, res.Detailed); err != nil {
		return fmt.Errorf("writing detailed calls: %w", err)
	}
	log.Printf("Wrote %d detailed calls to %s\n", res.Detailed.Len(), run.Detailed)

	if run.Closest != "" {
		if err := report.WriteFile(run.Closest, caller.ClosestTable(res.Closest)); err != nil {
			return fmt.Errorf("writing closest libraries: %w", err)
		}
		log.Printf("Wrote %d closest libraries to %s\n", len(res.Closest), run.Closest)
	}

	summary, err := report.Summarize(res)
	if err != nil {
		return fmt.Errorf("summarizing: %w", err)
	}
	for _, line := range summary.Lines() {
		log.Println(line)
	}

	return nil
}

// load reads the metadata and every metrics file and joins them.
func load(ctx context.Context, client *storage.Client, run RunFile, cfg caller.Config) (*crosscheck.Table, error) {
	log.Printf("Reading metadata from %s\n", run.Metadata)
	rc, err := fingerprint.Open(ctx, run.Metadata, client)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	md, err := crosscheck.ReadMetadata(rc, cfg.MergeKey)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("loading metadata %s: %w", run.Metadata, err)
	}
	log.Printf("Read %d metadata records with fields %v\n", md.Len(), md.Columns)

	// Files are read concurrently but concatenated in the order given.
	perFile := make([][]crosscheck.Metric, len(run.Crosscheck))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range run.Crosscheck {
		i, path := i, path
		g.Go(func() error {
			log.Printf("Reading %s\n", path)
			rc, err := fingerprint.Open(gctx, path, client)
			if err != nil {
				return fmt.Errorf("loading crosscheck metrics: %w", err)
			}
			defer rc.Close()

			if perFile[i], err = crosscheck.ReadMetrics(rc); err != nil {
				return fmt.Errorf("loading crosscheck metrics %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := make([]crosscheck.Metric, 0)
	for _, m := range perFile {
		metrics = append(metrics, m...)
	}

	table, stats, err := crosscheck.Join(metrics, md, cfg.Suffix)
	if err != nil {
		return nil, fmt.Errorf("joining metadata: %w", err)
	}
	log.Printf("Joined %d of %d comparisons to metadata\n", stats.Joined, stats.Metrics)
	if stats.MissingLeft > 0 || stats.MissingRight > 0 {
		log.Printf("Dropped %d comparisons with no metadata for LEFT_GROUP_VALUE and %d with none for RIGHT_GROUP_VALUE\n", stats.MissingLeft, stats.MissingRight)
	}

	return table, nil
}
