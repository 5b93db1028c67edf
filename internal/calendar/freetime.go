package calendar

import (
	"sort"
	"time"

	"github.com/teemow/maccal/internal/applescript"
)

// busyInterval is an occupied span clipped to the working window.
type busyInterval struct {
	start time.Time
	end   time.Time
}

// ComputeFreeSlots returns the gaps of at least minDuration between
// windowStart and windowEnd that are not covered by any event. Events are
// clipped to the window, overlapping events are merged, and events whose
// dates fail to parse are ignored rather than blocking the day.
func ComputeFreeSlots(events []Event, windowStart, windowEnd time.Time, minDuration time.Duration) []FreeSlot {
	if !windowEnd.After(windowStart) || minDuration <= 0 {
		return []FreeSlot{}
	}

	busy := make([]busyInterval, 0, len(events))
	for _, evt := range events {
		start, okStart := applescript.ParseDate(evt.StartDate)
		end, okEnd := applescript.ParseDate(evt.EndDate)
		if !okStart || !okEnd || !end.After(start) {
			continue
		}
		if !end.After(windowStart) || !start.Before(windowEnd) {
			continue
		}
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		busy = append(busy, busyInterval{start: start, end: end})
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].start.Before(busy[j].start) })
	merged := mergeIntervals(busy)

	slots := []FreeSlot{}
	cursor := windowStart
	for _, iv := range merged {
		appendSlot(&slots, cursor, iv.start, minDuration)
		cursor = iv.end
	}
	appendSlot(&slots, cursor, windowEnd, minDuration)
	return slots
}

// mergeIntervals coalesces overlapping or touching intervals. Input must be
// sorted by start.
func mergeIntervals(intervals []busyInterval) []busyInterval {
	merged := make([]busyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if n := len(merged); n > 0 && !iv.start.After(merged[n-1].end) {
			if iv.end.After(merged[n-1].end) {
				merged[n-1].end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func appendSlot(slots *[]FreeSlot, start, end time.Time, minDuration time.Duration) {
	gap := end.Sub(start)
	if gap < minDuration {
		return
	}
	*slots = append(*slots, FreeSlot{
		Start:           applescript.NormalizeISO(start.Format(time.RFC3339Nano)),
		End:             applescript.NormalizeISO(end.Format(time.RFC3339Nano)),
		DurationMinutes: int(gap / time.Minute),
	})
}
