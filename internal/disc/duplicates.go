package disc

import "tvrip/internal/episodemap"

// markDuplicates tags runs of adjacent equal-duration titles. Discs commonly
// carry several copies of each episode differing only in audio or angle;
// the run markers let the mapping policy keep one copy per run.
func markDuplicates(titles []Title) {
	for i := range titles {
		titles[i].Duplicate = episodemap.DuplicateNone
	}
	for i := 1; i < len(titles); i++ {
		if titles[i].Duration == titles[i-1].Duration {
			if titles[i-1].Duplicate == episodemap.DuplicateNone {
				titles[i-1].Duplicate = episodemap.DuplicateFirst
			}
			titles[i].Duplicate = episodemap.DuplicateMiddle
		} else if titles[i-1].Duplicate == episodemap.DuplicateMiddle {
			titles[i-1].Duplicate = episodemap.DuplicateLast
		}
	}
	if n := len(titles); n > 0 && titles[n-1].Duplicate == episodemap.DuplicateMiddle {
		titles[n-1].Duplicate = episodemap.DuplicateLast
	}
}

// MarkDuplicateRun manually tags titles start through end (inclusive, 1-based
// title numbers) as one duplicate run, adjusting any neighboring runs the new
// tags disturb. A run of one clears the title's duplicate state.
func MarkDuplicateRun(titles []Title, start, end int) {
	var startIdx, endIdx = -1, -1
	for i, title := range titles {
		if title.Number == start {
			startIdx = i
		}
		if title.Number == end {
			endIdx = i
		}
	}
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return
	}

	if startIdx == endIdx {
		titles[startIdx].Duplicate = episodemap.DuplicateNone
	} else {
		titles[startIdx].Duplicate = episodemap.DuplicateFirst
		for i := startIdx + 1; i < endIdx; i++ {
			titles[i].Duplicate = episodemap.DuplicateMiddle
		}
		titles[endIdx].Duplicate = episodemap.DuplicateLast
	}

	// Repair the run truncated on the left of the new one.
	if startIdx > 0 {
		switch titles[startIdx-1].Duplicate {
		case episodemap.DuplicateFirst:
			titles[startIdx-1].Duplicate = episodemap.DuplicateNone
		case episodemap.DuplicateMiddle:
			titles[startIdx-1].Duplicate = episodemap.DuplicateLast
		}
	}
	// And on the right.
	if endIdx+1 < len(titles) {
		switch titles[endIdx+1].Duplicate {
		case episodemap.DuplicateLast:
			titles[endIdx+1].Duplicate = episodemap.DuplicateNone
		case episodemap.DuplicateMiddle:
			titles[endIdx+1].Duplicate = episodemap.DuplicateFirst
		}
	}
}
