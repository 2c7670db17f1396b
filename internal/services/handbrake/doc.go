// Package handbrake invokes HandBrakeCLI to transcode disc titles and
// chapter ranges into output files.
package handbrake
