package api

// Session cookie.
const (
	// SessionCookieName carries the opaque session token.
	SessionCookieName = "token"
)

// StorageFailureMessage replaces the message of every 5xx response.
const StorageFailureMessage = "The catalog could not complete the request. Try again later."

// Cache-Control header values.
const (
	CacheNoStore = "no-store"
)