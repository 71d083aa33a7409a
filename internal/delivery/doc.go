// Package delivery implements the mechanisms by which conversation events
// reach the client: Server-Sent Events for real-time push, adaptive polling
// as a fallback, and an auto mode that tries SSE first and falls back to
// polling when the stream cannot be established.
//
// Strategies only move raw api.Event values; turning them into public
// ConversationEvent values, deduplicating across reconnections, and fanning
// out to subscribers is the root package's job.
package delivery
