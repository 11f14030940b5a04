package availability

import "sort"

// Window is a shop's open interval for one day, as half-open
// minutes-of-day [Open, Close).
type Window struct {
	Open  int
	Close int
}

// Interval is a half-open busy span [Start, End) in minutes-of-day.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// FreeIntervals returns the complement of busy within the window, in
// ascending order. Busy intervals may arrive unsorted and may extend
// past the window edges (working hours can change after a booking was
// taken); they are clipped rather than producing negative gaps.
// Zero-length gaps between back-to-back bookings are dropped.
func FreeIntervals(w Window, busy []Interval) []Interval {
	if w.Close <= w.Open {
		return nil
	}

	clipped := make([]Interval, 0, len(busy))
	for _, b := range busy {
		start, end := b.Start, b.End
		if start < w.Open {
			start = w.Open
		}
		if end > w.Close {
			end = w.Close
		}
		if start < end {
			clipped = append(clipped, Interval{Start: start, End: end})
		}
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start < clipped[j].Start })

	free := make([]Interval, 0, len(clipped)+1)
	cursor := w.Open
	for _, b := range clipped {
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < w.Close {
		free = append(free, Interval{Start: cursor, End: w.Close})
	}
	return free
}

// Slots enumerates candidate start minutes within the free intervals.
// Within each interval [F, E) candidates are F, F+step, F+2*step, ...
// while start+duration <= E; slots align to the interval start, not to
// any global epoch. Starts earlier than notBefore are skipped (pass 0
// for dates other than today).
func Slots(free []Interval, duration, step, notBefore int) []int {
	if duration <= 0 || step <= 0 {
		return nil
	}

	var slots []int
	for _, f := range free {
		for start := f.Start; start+duration <= f.End; start += step {
			if start < notBefore {
				continue
			}
			slots = append(slots, start)
		}
	}
	return slots
}

// RoundUp returns the smallest multiple of step that is >= minute.
func RoundUp(minute, step int) int {
	if step <= 0 {
		return minute
	}
	if minute%step == 0 {
		return minute
	}
	return (minute/step + 1) * step
}
