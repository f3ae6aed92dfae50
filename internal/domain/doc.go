// Package domain contains the core business entities, value objects, and
// domain logic of the application: decks, the cards they own, and the
// validation rules both must satisfy before they are persisted.
package domain
