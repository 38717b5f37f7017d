package main

import (
	"os"

	"github.com/carbocation/fingerprint"
	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// RunFile describes a run. JSON is valid YAML, so either format works.
type RunFile struct {
	ConfigPath string `yaml:"-"`

	Metadata      string   `yaml:"metadata"`
	Crosscheck    []string `yaml:"crosscheck"`
	AmbiguousLOD  string   `yaml:"ambiguous_lod"`
	IgnoreLibrary string   `yaml:"ignore_library"`
	IgnorePair    string   `yaml:"ignore_pair"`

	Calls    string `yaml:"calls"`
	Detailed string `yaml:"detailed"`
	Closest  string `yaml:"closest"`

	Separator string `yaml:"separator"`
	SampleID  string `yaml:"sample_id"`
	MergeKey  string `yaml:"merge_key"`

	Columns struct {
		Donor         string `yaml:"donor"`
		LibraryName   string `yaml:"library_name"`
		LibraryDesign string `yaml:"library_design"`
		Batches       string `yaml:"batches"`
	} `yaml:"columns"`
}

func ParseRunFileFromPath(path string) (RunFile, error) {
	out := RunFile{ConfigPath: path}

	f, err := os.Open(fingerprint.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return out, pfx.Err(err)
	}

	// Interpret ~ if present. gs:// paths pass through untouched.
	out.Metadata = fingerprint.ExpandHome(out.Metadata)
	out.AmbiguousLOD = fingerprint.ExpandHome(out.AmbiguousLOD)
	out.IgnoreLibrary = fingerprint.ExpandHome(out.IgnoreLibrary)
	out.IgnorePair = fingerprint.ExpandHome(out.IgnorePair)
	out.Calls = fingerprint.ExpandHome(out.Calls)
	out.Detailed = fingerprint.ExpandHome(out.Detailed)
	out.Closest = fingerprint.ExpandHome(out.Closest)
	for i, v := range out.Crosscheck {
		out.Crosscheck[i] = fingerprint.ExpandHome(v)
	}

	return out, nil
}

// Only inputs are read through the storage client.
func (r RunFile) usesGoogleStorage() bool {
	if fingerprint.IsGoogleStoragePath(r.Metadata) {
		return true
	}
	for _, path := range r.Crosscheck {
		if fingerprint.IsGoogleStoragePath(path) {
			return true
		}
	}

	return false
}
