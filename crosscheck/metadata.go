package crosscheck

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/tidwall/gjson"
)

// Metadata holds one record per library, keyed by its merge key. Columns are
// kept in the order they were first seen in the JSON input.
type Metadata struct {
	MergeKey string
	Columns  []string
	Records  [][]Value

	index map[string]int
}

// ReadMetadata parses a JSON array of objects. Every object must carry
// mergeKey, and no two objects may share a merge key value.
func ReadMetadata(r io.Reader, mergeKey string) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if !gjson.ValidBytes(data) {
		return nil, pfx.Err(fmt.Errorf("metadata is not valid JSON"))
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, pfx.Err(fmt.Errorf("metadata must be a JSON array of objects"))
	}

	md := &Metadata{
		MergeKey: mergeKey,
		index:    make(map[string]int),
	}
	position := make(map[string]int)
	fields := make([]map[string]Value, 0)

	var parseErr error
	root.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsObject() {
			parseErr = fmt.Errorf("record %d is not a JSON object", len(fields))
			return false
		}

		values := make(map[string]Value)
		rec.ForEach(func(key, val gjson.Result) bool {
			name := key.String()
			if _, seen := position[name]; !seen {
				position[name] = len(md.Columns)
				md.Columns = append(md.Columns, name)
			}
			values[name] = valueFromJSON(val)
			return true
		})

		key, ok := values[mergeKey]
		if !ok || key.IsNull() {
			parseErr = fmt.Errorf("record %d has no %q", len(fields), mergeKey)
			return false
		}
		if prior, dup := md.index[key.String()]; dup {
			parseErr = fmt.Errorf("%w: %s %q is used by records %d and %d", ErrCardinality, mergeKey, key.String(), prior, len(fields))
			return false
		}
		md.index[key.String()] = len(fields)
		fields = append(fields, values)

		return true
	})
	if parseErr != nil {
		return nil, pfx.Err(parseErr)
	}

	// Align every record to the full column list; absent fields are null.
	md.Records = make([][]Value, len(fields))
	for i, values := range fields {
		row := make([]Value, len(md.Columns))
		for col, name := range md.Columns {
			if v, ok := values[name]; ok {
				row[col] = v
			} else {
				row[col] = Null()
			}
		}
		md.Records[i] = row
	}

	return md, nil
}

func (m *Metadata) Len() int {
	return len(m.Records)
}

// Lookup returns the record whose merge key renders as key.
func (m *Metadata) Lookup(key string) ([]Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.Records[i], true
}

func valueFromJSON(val gjson.Result) Value {
	switch val.Type {
	case gjson.Null:
		return Null()
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.Number:
		if v, err := NumberText(val.Raw); err == nil {
			return v
		}
		return Number(val.Float())
	case gjson.String:
		return String(val.String())
	}

	if val.IsArray() {
		items := make([]string, 0)
		for _, item := range val.Array() {
			items = append(items, item.String())
		}
		return List(items)
	}

	// Nested objects are kept verbatim.
	return String(val.Raw)
}
