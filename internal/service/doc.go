// Package service contains the deck pipeline use cases. It orchestrates the
// source loaders, the segmenter, the outline synthesizer and the deck builder
// to turn a topic or a document into a persisted presentation.
//
// Key components:
//
// 1. DeckService:
//   - TopicDeck synthesizes an outline from a topic and renders it
//   - ContentDeck segments supplied or loaded text and renders it
//   - SynthesizeOutline and RenderOutline split the topic flow in two so an
//     outline can be reviewed or edited before rendering
//
// 2. Error Handling:
//   - Structural failures (empty outline, unavailable source, persistence)
//     end the run and are returned wrapped in DeckServiceError, which keeps
//     the domain sentinel reachable through errors.Is
//   - Non-quota generation failures never end a run; they are reported as
//     warnings on the result
package service
