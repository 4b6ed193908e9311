package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// NormalizeLimit clamps a requested page size into [1, MaxLimit]. Values
// below one fall back to DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}

	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}

// Window is a half-open slice range [Start, End) over an ordered collection.
type Window struct {
	Start   int
	End     int
	HasMore bool
}

func (w Window) Len() int {
	return w.End - w.Start
}

// OffsetWindow selects up to limit items starting at skip.
func OffsetWindow(total, skip, limit int) Window {
	limit = NormalizeLimit(limit)

	if skip < 0 {
		skip = 0
	}

	start := min(skip, total)
	end := min(start+limit, total)

	return Window{Start: start, End: end, HasMore: end < total}
}

// CursorWindow selects a page relative to an id in ids. startingAfter yields
// the items after that id, endingBefore the items immediately before it.
// The boolean is false when the referenced id is not present.
func CursorWindow(ids []string, startingAfter, endingBefore string, limit int) (Window, bool) {
	limit = NormalizeLimit(limit)
	total := len(ids)

	switch {
	case endingBefore != "":
		pivot := indexOf(ids, endingBefore)
		if pivot < 0 {
			return Window{}, false
		}

		start := max(pivot-limit, 0)

		return Window{Start: start, End: pivot, HasMore: start > 0}, true

	case startingAfter != "":
		pivot := indexOf(ids, startingAfter)
		if pivot < 0 {
			return Window{}, false
		}

		start := pivot + 1
		end := min(start+limit, total)

		return Window{Start: start, End: end, HasMore: end < total}, true

	default:
		end := min(limit, total)

		return Window{Start: 0, End: end, HasMore: end < total}, true
	}
}

func indexOf(ids []string, id string) int {
	for idx, candidate := range ids {
		if candidate == id {
			return idx
		}
	}

	return -1
}
