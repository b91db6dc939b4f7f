package ports

// Transport defines the lifecycle of an inbound transport serving the triage
// service (currently the HTTP API)
type Transport interface {
	// Start starts serving requests; it must not block
	Start() error

	// Stop shuts the transport down gracefully
	Stop() error
}
