// Package api handles incoming HTTP requests for decks and cards. Handlers
// decode and validate requests, resolve the caller from the request context,
// delegate to the service layer and translate its errors to status codes.
package api
