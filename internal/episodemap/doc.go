// Package episodemap computes mappings from disc titles (or chapter ranges
// within a title) to the unripped episodes of a season.
//
// The package is pure: it receives read-only snapshots of the scanned titles
// and the season's episodes, and returns a new Mapping without touching any
// caller state. Whole-title matching is attempted first; when that fails the
// longest title is searched for contiguous chapter ranges that fit the
// configured duration window. Multiple chapter solutions are narrowed through
// a synchronous yes/no oracle supplied by the caller.
package episodemap
