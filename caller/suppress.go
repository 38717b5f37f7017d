package caller

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/fingerprint"
	"github.com/carbocation/pfx"
)

// Suppressions lists libraries and library pairs that are known false
// positives. They never produce a swap, though they can still be matched.
// The zero value suppresses nothing.
type Suppressions struct {
	libraries map[string]struct{}
	pairs     map[[2]string]struct{}
}

func orderedPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}

	return [2]string{a, b}
}

// NewSuppressions builds the ignore lists. Pairs are unordered.
func NewSuppressions(libraries []string, pairs [][2]string) Suppressions {
	s := Suppressions{
		libraries: make(map[string]struct{}, len(libraries)),
		pairs:     make(map[[2]string]struct{}, len(pairs)),
	}
	for _, lib := range libraries {
		s.libraries[lib] = struct{}{}
	}
	for _, p := range pairs {
		s.pairs[orderedPair(p[0], p[1])] = struct{}{}
	}

	return s
}

func (s Suppressions) Len() int {
	return len(s.libraries) + len(s.pairs)
}

// Suppressed reports whether either library, or the two together, are on an
// ignore list.
func (s Suppressions) Suppressed(p Pair) bool {
	if _, ok := s.libraries[p.LibraryName]; ok {
		return true
	}
	if _, ok := s.libraries[p.LibraryNameMatch]; ok {
		return true
	}
	_, ok := s.pairs[orderedPair(p.LibraryName, p.LibraryNameMatch)]

	return ok
}

// ParseIgnoredLibraries reads a JSON array of library names.
func ParseIgnoredLibraries(r io.Reader) ([]string, error) {
	var libraries []string
	if err := json.NewDecoder(r).Decode(&libraries); err != nil {
		return nil, pfx.Err(err)
	}

	return libraries, nil
}

// ParseIgnoredPairs reads a JSON array of two-element arrays of library names.
func ParseIgnoredPairs(r io.Reader) ([][2]string, error) {
	var raw [][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([][2]string, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, pfx.Err(fmt.Errorf("ignored pair %d must name exactly 2 libraries, got %d", i, len(p)))
		}
		out = append(out, [2]string{p[0], p[1]})
	}

	return out, nil
}

// LoadSuppressions reads the ignore lists from disk. Either path may be empty.
func LoadSuppressions(libraryPath, pairPath string) (Suppressions, error) {
	var libraries []string
	var pairs [][2]string

	if libraryPath != "" {
		f, err := os.Open(fingerprint.ExpandHome(libraryPath))
		if err != nil {
			return Suppressions{}, pfx.Err(err)
		}
		defer f.Close()

		if libraries, err = ParseIgnoredLibraries(f); err != nil {
			return Suppressions{}, fmt.Errorf("%s: %w", libraryPath, err)
		}
	}

	if pairPath != "" {
		f, err := os.Open(fingerprint.ExpandHome(pairPath))
		if err != nil {
			return Suppressions{}, pfx.Err(err)
		}
		defer f.Close()

		if pairs, err = ParseIgnoredPairs(f); err != nil {
			return Suppressions{}, fmt.Errorf("%s: %w", pairPath, err)
		}
	}

	return NewSuppressions(libraries, pairs), nil
}
