// Package session keeps per-visitor state on the server, addressed by an
// opaque token carried in a cookie.
//
// Middleware loads one *Session per request into the gin context and saves it
// once the handler chain returns. Handlers never share a Session across
// requests; two concurrent requests for the same token race and the last save
// wins.
package session
