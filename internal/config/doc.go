// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the DECKFORGE_ prefix with dots replaced by
// underscores, for example DECKFORGE_LLM_GEMINI_API_KEY.
package config
