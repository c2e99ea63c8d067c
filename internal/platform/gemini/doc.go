// Package gemini provides an implementation of the generation.TextGenerator
// interface that uses Google's Gemini API to produce slide titles and slide
// body text.
//
// This package is an infrastructure adapter, connecting the application's
// deck pipeline to Google's external Gemini AI service without exposing the
// details of the service to the rest of the application.
//
// Key components:
//
// 1. Generator:
//   - Implements generation.TextGenerator with a single GenerateContent call
//   - Concatenates the text parts of the first candidate
//
// 2. Error Handling:
//   - Reports quota exhaustion (HTTP 429 / RESOURCE_EXHAUSTED) as
//     generation.ErrQuotaExceeded so the retry client can wait and retry
//   - Reports safety blocks and empty candidates as permanent failures
//
// Retries are not performed here. They belong to generation.Client, which
// applies the same policy to every backend.
package gemini
