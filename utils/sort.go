package utils

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type SortDirection int

const (
	Unsorted SortDirection = iota
	Ascending
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "none"
}

func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// SortState is the column-header toggle: unsorted, then ascending, then
// descending, then back to ascending. Picking another column restarts at ascending.
type SortState struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction"`
}

func (s SortState) Toggle(column string) SortState {
	if s.Column != column || s.Direction == Unsorted {
		return SortState{Column: column, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return SortState{Column: column, Direction: Descending}
	}
	return SortState{Column: column, Direction: Ascending}
}

// Comparator orders two records by one column.
type Comparator[T any] func(a, b T) int

func ByInt[T any](get func(T) int) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func ByFloat[T any](get func(T) float64) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

// ByString orders text case-insensitively; case only breaks ties.
func ByString[T any](get func(T) string) Comparator[T] {
	return func(a, b T) int {
		x, y := get(a), get(b)
		if c := strings.Compare(strings.ToLower(x), strings.ToLower(y)); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	}
}

func ByBool[T any](get func(T) bool) Comparator[T] {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
}

func ByTime[T any](get func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

// SortedCopy returns items ordered by state using the column's comparator.
// Unknown columns and the unsorted state return the items in fetch order.
func SortedCopy[T any](items []T, state SortState, columns map[string]Comparator[T]) []T {
	out := slices.Clone(items)
	compare, ok := columns[state.Column]
	if !ok || state.Direction == Unsorted {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if state.Direction == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}
