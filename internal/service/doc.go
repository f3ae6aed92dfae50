// Package service implements the deck and card use cases on top of the store
// interfaces: the access guard, the deck aggregate operations and the card
// lifecycle operations, including the advisory deck counters.
package service
