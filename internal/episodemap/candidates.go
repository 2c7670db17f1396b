package episodemap

import "time"

// Range is a contiguous chapter subsequence within one title, identified by
// its inclusive 1-based start and end chapter numbers.
type Range struct {
	Start    int
	End      int
	Duration time.Duration
}

// Candidates returns every contiguous chapter range whose summed duration
// lies within the window, ordered ascending by start then end. Chapter
// durations are non-negative, so the forward accumulation is monotonic and
// each inner scan stops as soon as the running sum exceeds the window
// maximum.
func Candidates(chapters []Chapter, w Window) []Range {
	var ranges []Range
	for start := 0; start < len(chapters); start++ {
		var sum time.Duration
		for end := start; end < len(chapters); end++ {
			sum += chapters[end].Duration
			if sum > w.Max {
				break
			}
			if w.Contains(sum) {
				ranges = append(ranges, Range{
					Start:    chapters[start].Number,
					End:      chapters[end].Number,
					Duration: sum,
				})
			}
		}
	}
	return ranges
}
