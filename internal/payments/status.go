package payments

import (
	"context"
	"time"
)

const (
	checkStatusUp   = "UP"
	checkStatusDown = "DOWN"
)

// ConfigSummary exposes the raw environment configuration.
func (s *Service) ConfigSummary() ConfigSummary {
	return ConfigSummary{Environment: s.rawEnvironment}
}

// SupportedComponents lists the checkout components this connector serves.
func (s *Service) SupportedComponents() []Component {
	return []Component{{Type: LabelMonext}}
}

// Status probes both external collaborators and aggregates the results.
// The overall status is UP only when every check passed.
func (s *Service) Status(ctx context.Context, timeout time.Duration) StatusReport {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checks := []CheckResult{
		s.checkLedger(ctx),
		s.checkMonext(ctx),
	}

	overall := checkStatusUp
	for _, c := range checks {
		if c.Status != checkStatusUp {
			overall = checkStatusDown
			break
		}
	}

	return StatusReport{
		Status: overall,
		Checks: checks,
		Metadata: map[string]string{
			"name":    "monext-connector",
			"version": Version,
		},
	}
}

func (s *Service) checkLedger(ctx context.Context) CheckResult {
	if err := s.ledger.Ping(ctx); err != nil {
		s.logger.Error("ledger health check failed", "error", err)
		return CheckResult{
			Name:    "Commerce Ledger API",
			Status:  checkStatusDown,
			Message: "The ledger API is unreachable. Check the logs for details.",
			Details: map[string]string{"error": err.Error()},
		}
	}
	return CheckResult{
		Name:    "Commerce Ledger API",
		Status:  checkStatusUp,
		Message: "Ledger API is working",
	}
}

func (s *Service) checkMonext(ctx context.Context) CheckResult {
	if err := s.monext.HealthCheck(ctx, s.environmentCfg.Default()); err != nil {
		s.logger.Error("monext health check failed", "error", err)
		return CheckResult{
			Name:    "Monext Payment API",
			Status:  checkStatusDown,
			Message: "The Monext payment API is down for some reason. Please check the logs for more details.",
			Details: map[string]string{"error": err.Error()},
		}
	}
	return CheckResult{
		Name:    "Monext Payment API",
		Status:  checkStatusUp,
		Message: "Monext API is working",
		Details: map[string]string{"paymentMethods": LabelMonext},
	}
}
