// Package domain contains the core entities of a deck run: slide units, outlines,
// deck typography and the error taxonomy shared by every stage of the pipeline.
// It has no knowledge of generation backends, source formats or the deck file
// format.
package domain
