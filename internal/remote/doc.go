// Package remote delegates blank selection to a chat-completion service.
//
// It builds single-sentence, batch and hint prompts, sends them through a
// Completer (OpenAI-compatible HTTP or Gemini), retries transient network
// failures, trips a circuit breaker on dead endpoints, repairs the
// frequently malformed JSON that comes back and validates every claimed
// blank against the sentence before accepting it.
package remote
