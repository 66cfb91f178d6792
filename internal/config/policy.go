package config

import (
	"fmt"
	"os"

	"github.com/blaisecz/driver-fatigue/internal/fatigue"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadPolicy layers the POLICY_FILE document over the defaults, then
// applies the REST_THRESHOLD_MINUTES and INCIDENT_CEILING_MINUTES
// overrides. Keys missing from the file keep their default values.
func LoadPolicy(cfg *Config) (fatigue.Policy, error) {
	policy := fatigue.DefaultPolicy()

	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			return fatigue.Policy{}, fmt.Errorf("read policy file: %w", err)
		}
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return fatigue.Policy{}, fmt.Errorf("parse policy file: %w", err)
		}
	}

	if cfg.RestThresholdMinutes > 0 {
		policy.RestThresholdMinutes = cfg.RestThresholdMinutes
	}
	if cfg.IncidentCeilingMinutes > 0 {
		policy.IncidentCeilingMinutes = cfg.IncidentCeilingMinutes
	}
	if len(policy.RestKeywords) == 0 {
		policy.RestKeywords = fatigue.DefaultRestKeywords()
	}

	if err := policy.Validate(); err != nil {
		return fatigue.Policy{}, err
	}
	return policy, nil
}

// LogPolicy records the segmentation parameters in effect. Two revisions
// of the rules disagree on them (15 or 20 minute rest gap, 3 or 4 hour
// ceiling) so they are always logged explicitly.
func LogPolicy(log *logrus.Logger, p fatigue.Policy) {
	log.WithFields(logrus.Fields{
		"rest_threshold_minutes":   p.RestThresholdMinutes,
		"incident_ceiling_minutes": p.IncidentCeilingMinutes,
		"night_window":             fmt.Sprintf("%02d:00-%02d:00", p.NightStartHour, p.NightEndHour),
	}).Info("Fatigue policy loaded")

	if p.RestThresholdMinutes != 15 && p.RestThresholdMinutes != 20 {
		log.Warnf("rest threshold %.0f min matches neither known revision (15 or 20)", p.RestThresholdMinutes)
	}
	if p.IncidentCeilingMinutes != 180 && p.IncidentCeilingMinutes != 240 {
		log.Warnf("incident ceiling %.0f min matches neither known revision (180 or 240)", p.IncidentCeilingMinutes)
	}
}
