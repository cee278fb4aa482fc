// Package resilience groups reliability patterns for calls to external
// services: retry with exponential backoff and circuit breaking.
// The summarization collaborator and feed fetching use both.
package resilience
