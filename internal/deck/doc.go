// Package deck assembles an outline into a presentation and writes it to disk.
//
// The file is written to a temporary name in the destination directory,
// synced, and renamed over the destination, so a reader never observes a
// partially written deck and a failed run leaves any previous file untouched.
package deck
