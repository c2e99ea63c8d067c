// Package synth turns a topic into an ordered outline of slides by asking a
// text generator first for slide titles and then for the body of each title.
//
// Quota exhaustion is absorbed by the generation client, which answers with
// fallback text. Any other failure while writing a body leaves that body empty
// and records a warning on the outline; the remaining slides are unaffected.
// Only a failed or empty title list aborts the run, with domain.ErrEmptyOutline.
package synth
