// Package disc scans optical media through HandBrakeCLI and models the
// result: titles with their chapters, audio and subtitle tracks, duplicate
// runs, and a stable disc identity used to recognize re-inserted discs.
package disc
