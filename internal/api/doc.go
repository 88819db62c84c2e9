// Package api exposes the scheduling operations over HTTP under
// /api/users/{userID}. Handlers decode and validate requests, call one
// service, and map service errors to status codes without leaking internals.
package api
