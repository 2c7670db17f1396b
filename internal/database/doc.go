// Package database persists programs, seasons, and episodes together
// with the rip state of each episode, backed by SQLite. It also keeps
// the interactive session state (current program/season and the last
// scanned disc) so separate command invocations pick up where the
// previous one left off.
package database
