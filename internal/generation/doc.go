// Package generation defines the interface for generating flashcards from free
// text with an external LLM. The Gemini implementation lives in
// internal/platform/gemini; services only see the Generator interface.
package generation
