package admin

import (
	"sort"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the column sort of a list page. Toggling the active column
// flips its direction; toggling another column starts it ascending.
type SortState struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Direction == Asc {
			return SortState{Field: field, Direction: Desc}
		}
		return SortState{Field: field, Direction: Asc}
	}
	return SortState{Field: field, Direction: Asc}
}

// SortKey extracts either a string or a numeric sort value from an item.
type SortKey[T any] struct {
	Text   func(T) string
	Number func(T) float64
}

func (k SortKey[T]) compare(a, b T) int {
	if k.Number != nil {
		d := k.Number(a) - k.Number(b)
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(k.Text(a)), strings.ToLower(k.Text(b)))
}

// SortBy returns a sorted copy of items. Unknown fields leave the order as is.
func SortBy[T any](items []T, state SortState, keys map[string]SortKey[T]) []T {
	out := append([]T(nil), items...)
	key, ok := keys[state.Field]
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := key.compare(out[i], out[j])
		if state.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}
