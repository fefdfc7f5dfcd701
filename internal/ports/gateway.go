package ports

// Gateway is the inbound port: a long-running front-end exposing the spam
// gate to callers.
type Gateway interface {
	// Start begins serving. It returns once the listener is running.
	Start() error

	// Stop shuts the front-end down gracefully.
	Stop() error
}
