// Package openai provides a generation.TextGenerator backed by the OpenAI
// chat completions API, or any endpoint compatible with it.
//
// The SDK's own retries are disabled so that quota handling follows the same
// fixed-delay policy as every other backend.
package openai
