// Package pptx writes and reads PresentationML (.pptx) files.
//
// It supports what a text deck needs: a slide master with two layouts (a title
// slide and a title-and-content slide), a theme, and slides whose placeholders
// hold paragraphs of runs with an explicit font size and color. Everything
// else a presentation can contain is out of scope.
//
// A Presentation is built in memory and serialized with WriteTo. Read parses
// a file written by this package, or any deck that uses the same placeholder
// conventions, back into the same model.
package pptx
