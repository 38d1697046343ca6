package http

import "context"

// Pinger is satisfied by *postgres.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnChecker is satisfied by *natsadapter.Publisher.
type ConnChecker interface {
	IsConnected() bool
}

// Dependencies holds what the admin handlers report on. Nil fields are
// treated as not configured.
type Dependencies struct {
	// FeatureCount returns the size of the loaded index.
	FeatureCount func() int
	DB           Pinger
	NATS         ConnChecker
	Version      string
}
