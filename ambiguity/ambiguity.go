// Package ambiguity holds, per pair of library designs, the range of LOD
// scores that is too close to zero to call same or different donor.
package ambiguity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/fingerprint"
	"github.com/carbocation/pfx"
)

// Rule marks [Lower, Upper] as inconclusive for the two library designs in
// Pair, in either order.
type Rule struct {
	Pair  []string `json:"pair"`
	Upper float64  `json:"upper"`
	Lower float64  `json:"lower"`
}

type pairKey [2]string

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{a, b}
}

type bounds struct {
	upper, lower float64
}

// Table maps unordered library design pairs to their ambiguous range. The
// zero value and a nil *Table are empty.
type Table struct {
	rules map[pairKey]bounds
}

// New builds a Table from rules in order. A later rule for the same pair
// replaces an earlier one.
func New(rules []Rule) (*Table, error) {
	t := &Table{rules: make(map[pairKey]bounds, len(rules))}

	for i, rule := range rules {
		if len(rule.Pair) != 2 {
			return nil, fmt.Errorf("ambiguity rule %d: pair must name exactly 2 library designs, got %d", i, len(rule.Pair))
		}
		t.rules[keyOf(rule.Pair[0], rule.Pair[1])] = bounds{upper: rule.Upper, lower: rule.Lower}
	}

	return t, nil
}

// Parse reads a JSON array of rules.
func Parse(r io.Reader) (*Table, error) {
	var rules []Rule
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, pfx.Err(err)
	}

	t, err := New(rules)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

// Load reads rules from path. An empty path gives an empty table.
func Load(path string) (*Table, error) {
	if path == "" {
		return New(nil)
	}

	f, err := os.Open(fingerprint.ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.rules)
}

// Lookup returns the inclusive bounds for a design pair. Pairs without a rule
// get (0, 0), so only a score of exactly 0 is ambiguous for them.
func (t *Table) Lookup(a, b string) (upper, lower float64) {
	if t == nil {
		return 0, 0
	}

	bd, ok := t.rules[keyOf(a, b)]
	if !ok {
		return 0, 0
	}

	return bd.upper, bd.lower
}

// Contains reports whether score falls inside the pair's ambiguous range,
// bounds included.
func (t *Table) Contains(score float64, a, b string) bool {
	upper, lower := t.Lookup(a, b)

	return lower <= score && score <= upper
}
