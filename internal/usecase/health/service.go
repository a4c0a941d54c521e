package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the index answers but is not fully set up.
	Degraded Status = "degraded"
	// Unhealthy indicates the index is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates a reachable component without expected state.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	index  IndexPinger
	schema SchemaChecker
}

// New creates a Service. schema can be nil for backends without a separate
// index schema.
func New(index IndexPinger, schema SchemaChecker) *Service {
	return &Service{index: index, schema: schema}
}

// Check pings the index and, when configured, verifies its schema.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.index.Ping(ctx); err != nil {
		checks["index"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["index"] = CheckOK

	status := Healthy
	if s.schema != nil {
		ok, err := s.schema.IndexExists(ctx)
		switch {
		case err != nil:
			checks["schema"] = CheckError
			status = Degraded
		case !ok:
			checks["schema"] = CheckMissing
			status = Degraded
		default:
			checks["schema"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
