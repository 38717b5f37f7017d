package crosscheck

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// Value is a single cell of a Table. Scalars keep the text they were read
// with; lists (such as batch memberships) keep their members.
type Value struct {
	Kind Kind
	text null.String
	num  float64
	list []string
}

func Null() Value {
	return Value{Kind: KindNull}
}

func String(s string) Value {
	return Value{Kind: KindString, text: null.StringFrom(s)}
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, text: null.StringFrom(strconv.FormatFloat(f, 'f', -1, 64)), num: f}
}

// NumberText keeps raw as the printed form of the number.
func NumberText(raw string) (Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, err
	}

	return Value{Kind: KindNumber, text: null.StringFrom(raw), num: f}, nil
}

func Bool(b bool) Value {
	if b {
		return Value{Kind: KindBool, text: null.StringFrom("True")}
	}

	return Value{Kind: KindBool, text: null.StringFrom("False")}
}

func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)

	return Value{Kind: KindList, list: cp}
}

func (v Value) IsNull() bool { return v.Kind == KindNull }

// Hashable reports whether the value can take part in a grouping key.
func (v Value) Hashable() bool { return v.Kind != KindList }

// Float returns the numeric value of a number cell.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}

	return v.num, true
}

// Bool returns the value of a bool cell.
func (v Value) Bool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}

	return v.text.String == "True", true
}

// Items returns a copy of the members of a list cell, or nil.
func (v Value) Items() []string {
	if v.Kind != KindList {
		return nil
	}

	cp := make([]string, len(v.list))
	copy(cp, v.list)

	return cp
}

// String renders the value as it is written to output tables. Nulls are
// empty and lists take the ['a', 'b'] form.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindList:
		quoted := make([]string, len(v.list))
		for i, item := range v.list {
			quoted[i] = "'" + item + "'"
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}

	return v.text.ValueOrZero()
}

// Equal compares two cells. Numbers compare numerically. A null is not equal
// to anything, including another null.
func (v Value) Equal(o Value) bool {
	if v.Kind == KindNull || o.Kind == KindNull || v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	}

	return v.text.String == o.text.String
}

// Key is a string that is identical for cells that group together.
func (v Value) Key() string {
	kind := strconv.Itoa(int(v.Kind))

	switch v.Kind {
	case KindNull:
		return kind
	case KindNumber:
		return kind + ":" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindList:
		var b strings.Builder
		b.WriteString(kind)
		for _, item := range v.list {
			b.WriteString(":" + strconv.Itoa(len(item)) + ":" + item)
		}
		return b.String()
	}

	return kind + ":" + v.text.String
}
