// Package tracing sets up the New Relic agent.
package tracing

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	AppName        string
	LicenseKey     string
	DistribTracing bool
	LogForwarding  bool
}

// NewApplication starts the agent. Without a license key tracing is off
// and the returned application is nil.
func NewApplication(cfg Config, logger *zap.Logger) (*newrelic.Application, error) {
	if cfg.LicenseKey == "" {
		logger.Info("New Relic license key not provided, tracing disabled")
		return nil, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.DistribTracing),
		newrelic.ConfigAppLogForwardingEnabled(cfg.LogForwarding),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize New Relic")
	}
	return app, nil
}
