package episodemap

import (
	"fmt"
	"time"
)

// Window is the inclusive duration range an episode is expected to occupy.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Contains reports whether d lies within the window. Both boundaries are
// inclusive. A window with Min greater than Max contains nothing.
func (w Window) Contains(d time.Duration) bool {
	return w.Min <= d && d <= w.Max
}

// Scale returns the window multiplied by parts, used when checking whether a
// single long title covers a multi-part episode.
func (w Window) Scale(parts int) Window {
	return Window{Min: w.Min * time.Duration(parts), Max: w.Max * time.Duration(parts)}
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Min, w.Max)
}
