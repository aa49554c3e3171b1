package config

import (
	"errors"
	"fmt"
)

var (
	errNoSubjects    = errors.New("config: at least one subject is required")
	errBadNodePort   = errors.New("config: node.port is required")
	errBadMonPort    = errors.New("config: monitor.port is required")
	errBadMonitorURL = errors.New("config: monitor.node_url is required")
	errBadPollRate   = errors.New("config: monitor.poll_interval must be > 0")
	errBadTimeout    = errors.New("config: monitor.request_timeout must be > 0")
	errBadSimTick    = errors.New("config: node.simulator.tick must be > 0 when enabled")
	errBadProgress   = errors.New("config: node.progress_goal must be > 0")
	errBadThresholds = errors.New("config: thresholds must be positive")
	errDuplicateID   = errors.New("config: subject ids must be unique")
)

// Validate checks configuration correctness without mutating it.
func (c *Config) Validate() error {
	if len(c.Subjects) == 0 {
		return errNoSubjects
	}
	seen := make(map[string]struct{}, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.ID == "" {
			return fmt.Errorf("config: subject with label %q has an empty id", s.Label)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %q", errDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	if c.Node.Port == "" {
		return errBadNodePort
	}
	if c.Monitor.Port == "" {
		return errBadMonPort
	}
	if c.Monitor.NodeURL == "" {
		return errBadMonitorURL
	}
	if c.Monitor.PollInterval <= 0 {
		return errBadPollRate
	}
	if c.Monitor.RequestTimeout <= 0 {
		return errBadTimeout
	}
	t := c.Monitor.Thresholds
	if t.MaxHeartRate <= 0 || t.MinSpO2 <= 0 || t.MaxMotion <= 0 {
		return errBadThresholds
	}

	if c.Node.Simulator.Enabled && c.Node.Simulator.Tick <= 0 {
		return errBadSimTick
	}
	if c.Node.ProgressGoal <= 0 {
		return errBadProgress
	}
	return nil
}
