// Package template defines the preventive-maintenance template aggregate: a
// recurring maintenance definition attached to an equipment model. Templates
// are authored by the configuration UI and are read-only to the scheduling
// engine.
package template

import (
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// FrequencyUnit enumerates the supported recurrence frequencies.
type FrequencyUnit string

const (
	FrequencyDaily     FrequencyUnit = "daily"
	FrequencyWeekly    FrequencyUnit = "weekly"
	FrequencyMonthly   FrequencyUnit = "monthly"
	FrequencyQuarterly FrequencyUnit = "quarterly"
	FrequencyAnnual    FrequencyUnit = "annual"
)

// Valid reports whether f is one of the supported enum values.
func (f FrequencyUnit) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	default:
		return false
	}
}

// ParseFrequencyUnit converts a raw string into a FrequencyUnit. Unknown
// values yield an ErrCodeInvalidFrequency error, never a silent default.
func ParseFrequencyUnit(s string) (FrequencyUnit, error) {
	f := FrequencyUnit(s)
	if !f.Valid() {
		return "", errors.Newf(errors.ErrCodeInvalidFrequency, "unknown frequency unit %q", s)
	}
	return f, nil
}

// PMTemplate is a recurring maintenance definition. The TargetModel string is
// matched against Equipment.Model (exact, case-sensitive) to select the
// equipment the template applies to.
type PMTemplate struct {
	ID               common.ID      `json:"id"`
	ScopeID          common.ScopeID `json:"scope_id"`
	TargetModel      string         `json:"target_model"`
	Component        string         `json:"component"`
	Action           string         `json:"action"`
	Description      string         `json:"description"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Frequency        FrequencyUnit  `json:"frequency"`
	Active           bool           `json:"active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewPMTemplate creates a validated PMTemplate.
func NewPMTemplate(scopeID common.ScopeID, targetModel, component, action string, frequency FrequencyUnit) (*PMTemplate, error) {
	if scopeID.IsZero() {
		return nil, errors.InvalidParam("scope ID must not be empty")
	}
	if targetModel == "" {
		return nil, errors.InvalidParam("target model must not be empty")
	}
	if component == "" {
		return nil, errors.InvalidParam("component must not be empty")
	}
	if action == "" {
		return nil, errors.InvalidParam("action must not be empty")
	}
	if !frequency.Valid() {
		return nil, errors.Newf(errors.ErrCodeInvalidFrequency, "unknown frequency unit %q", string(frequency))
	}

	now := time.Now().UTC()
	return &PMTemplate{
		ID:          common.NewID(),
		ScopeID:     scopeID,
		TargetModel: targetModel,
		Component:   component,
		Action:      action,
		Frequency:   frequency,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Matches reports whether the template targets the given equipment model.
// Matching is exact and case-sensitive.
func (t *PMTemplate) Matches(model string) bool {
	return t.TargetModel == model
}

// Validate checks the integrity of the template. Inactive templates are valid
// but never synthesize work orders.
func (t *PMTemplate) Validate() error {
	if t.ID.IsZero() {
		return errors.InvalidParam("template ID must not be empty")
	}
	if t.ScopeID.IsZero() {
		return errors.InvalidParam("template scope ID must not be empty")
	}
	if t.TargetModel == "" {
		return errors.InvalidParam("template target model must not be empty")
	}
	if !t.Frequency.Valid() {
		return errors.Newf(errors.ErrCodeInvalidFrequency, "unknown frequency unit %q", string(t.Frequency))
	}
	return nil
}
