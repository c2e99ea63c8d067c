// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. Deck requests are accepted as background jobs:
// clients submit a topic or content, poll the job, then download the deck.
package api
