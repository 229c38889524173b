package health

import "context"

// Pinger checks a store's availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks an upstream API's availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
