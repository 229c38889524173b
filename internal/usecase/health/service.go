package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates a required component is failing.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type component struct {
	name     string
	required bool
	check    func(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	components []component
	timeout    time.Duration
}

// New creates a Service. entities and sessions are required; the generative
// provider is optional and may be nil.
func New(entities, sessions Pinger, generative ProviderChecker) *Service {
	s := &Service{timeout: 3 * time.Second}
	if entities != nil {
		s.components = append(s.components, component{"database", true, entities.Ping})
	}
	if sessions != nil {
		s.components = append(s.components, component{"sessions", true, sessions.Ping})
	}
	if generative != nil {
		s.components = append(s.components, component{"generative", false, generative.HealthCheck})
	}
	return s
}

// Check runs all component checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make([]CheckResult, len(s.components))
	var wg sync.WaitGroup
	for i, c := range s.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = CheckOK
			if err := c.check(ctx); err != nil {
				results[i] = CheckError
			}
		}()
	}
	wg.Wait()

	status := Healthy
	checks := make(map[string]CheckResult, len(s.components))
	for i, c := range s.components {
		checks[c.name] = results[i]
		if results[i] != CheckError {
			continue
		}
		if c.required {
			status = Unhealthy
		} else if status == Healthy {
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}
