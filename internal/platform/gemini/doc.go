// Package gemini implements generation.Generator on top of Google's Gemini API.
//
// The generator renders an embedded prompt around the source text, asks the model
// for a JSON document of question/answer pairs and converts it into card drafts.
// Transient API failures are retried with bounded exponential backoff; blocked or
// unparseable responses are returned immediately.
package gemini
