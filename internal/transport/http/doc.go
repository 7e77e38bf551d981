// Package http implements the HTTP request handlers for the salary
// analytics API. Handlers stay thin: they parse and validate requests,
// delegate to services, and transform service errors into RFC 7807
// problem responses.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Analytics
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
package http
