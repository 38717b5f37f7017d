// Package report writes the call tables and summarizes a run.
package report

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/carbocation/fingerprint"
	"github.com/carbocation/fingerprint/crosscheck"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteTable writes t as comma separated values, header first.
func WriteTable(w io.Writer, t *crosscheck.Table) error {
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))

	for _, rec := range t.Records() {
		if err := cw.Write(rec); err != nil {
			return pfx.Err(err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile writes t to path, replacing any existing file.
func WriteFile(path string, t *crosscheck.Table) error {
	f, err := os.Create(fingerprint.ExpandHome(path))
	if err != nil {
		return pfx.Err(err)
	}

	if err := WriteTable(f, t); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
