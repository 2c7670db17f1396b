// Command tvrip rips TV series from DVD and Blu-ray discs: it scans a
// disc, maps its titles and chapters onto episodes, and drives HandBrake
// to produce one file per episode.
package main
