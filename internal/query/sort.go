package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrBadDirection     = errors.New("bad sort direction")
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

func ParseDirection(v string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, fmt.Errorf("%q: %w", v, ErrBadDirection)
}

// SortKey is the column/direction pair a table header holds.
type SortKey struct {
	Field string
	Dir   Direction
}

// Toggle is what clicking a column header does: the same column flips
// direction, another column starts ascending.
func (k SortKey) Toggle(field string) SortKey {
	if k.Field == field {
		if k.Dir == Asc {
			return SortKey{Field: field, Dir: Desc}
		}
		return SortKey{Field: field, Dir: Asc}
	}
	return SortKey{Field: field, Dir: Asc}
}

// Field compares two rows on one column. Collator is nil for non-string
// columns.
type Field[T any] struct {
	compare func(c *collate.Collator, a, b T) int
}

type Fields[T any] map[string]Field[T]

func StringField[T any](get func(T) string) Field[T] {
	return Field[T]{compare: func(c *collate.Collator, a, b T) int {
		return c.CompareString(get(a), get(b))
	}}
}

func NumberField[T any, N int | int64 | float64](get func(T) N) Field[T] {
	return Field[T]{compare: func(_ *collate.Collator, a, b T) int {
		d := get(a) - get(b)
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	}}
}

func TimeField[T any](get func(T) time.Time) Field[T] {
	return Field[T]{compare: func(_ *collate.Collator, a, b T) int {
		return get(a).Compare(get(b))
	}}
}

// Sorter carries the collation locale for string columns.
type Sorter struct {
	tag language.Tag
}

func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("collation locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

// DefaultSorter collates like the web app, Indonesian.
var DefaultSorter = &Sorter{tag: language.Indonesian}

// Sort orders rows with DefaultSorter.
func Sort[T any](rows []T, key SortKey, fields Fields[T]) ([]T, error) {
	return SortWith(DefaultSorter, rows, key, fields)
}

// SortWith returns a stably sorted copy of rows. Collators are not safe
// for concurrent use so each call builds its own.
func SortWith[T any](s *Sorter, rows []T, key SortKey, fields Fields[T]) ([]T, error) {
	f, ok := fields[key.Field]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key.Field, ErrUnknownSortField)
	}
	c := collate.New(s.tag)

	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	sign := 1
	if key.Dir == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return sign * f.compare(c, a, b)
	})
	return out, nil
}

// Paginate slices a page out of rows; limit <= 0 means no limit.
func Paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return rows[offset:end]
}
