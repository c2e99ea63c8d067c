// Package source reads the raw text of documents and web pages for conversion
// into slides. Every loader returns plain text with one paragraph per line,
// the form expected by the segment package.
//
// All failures wrap domain.ErrSourceUnavailable.
package source
