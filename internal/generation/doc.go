// Package generation provides the boundary between the deck pipeline and external
// AI/LLM text generation services (Gemini, OpenAI-compatible endpoints).
//
// A TextGenerator performs exactly one call to a service. Client wraps a
// TextGenerator with a bounded, fixed-interval retry policy for quota exhaustion
// and turns exhausted retries into fallback text, so that a single failed call
// degrades one slide instead of aborting the whole run.
package generation
