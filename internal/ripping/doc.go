// Package ripping orchestrates the rip of mapped episodes: it selects
// audio and subtitle tracks, expands filename templates, drives the
// HandBrake client, and records the rip state of each episode.
package ripping
