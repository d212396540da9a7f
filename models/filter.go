package models

import "fmt"

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending, FilterCompleted:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Matches reports whether an order belongs to the filtered view.
func (f StatusFilter) Matches(o Order) bool {
	if f == FilterAll {
		return true
	}
	return string(o.Status) == string(f)
}
