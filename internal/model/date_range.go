package model

// DateRange bounds a due-date query. The start is always inclusive; the end
// is inclusive only when EndInclusive is set.
type DateRange struct {
	Start        Date
	End          Date
	EndInclusive bool
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d Date) bool {
	if d.Before(r.Start.Time) {
		return false
	}
	if r.EndInclusive {
		return !d.After(r.End.Time)
	}
	return d.Before(r.End.Time)
}
