package show

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nerrad567/skyfire-core/internal/rhythm"
)

// Validation constants.
const (
	minTotalOutputs = 1
	maxTotalOutputs = 1000
	maxRunLength    = 100
	maxDelaySeconds = 300 // 5 minutes between outputs is already absurd
)

// ValidateConfig rejects malformed show configuration before allocation
// begins. Configuration drift (percentages not summing to 100, no shot
// types enabled for an act) is NOT an error here; the allocator corrects
// those with a logged warning.
func ValidateConfig(cfg Config) error {
	if cfg.TotalOutputs < minTotalOutputs || cfg.TotalOutputs > maxTotalOutputs {
		return fmt.Errorf("%w: total outputs must be %d-%d, got %d",
			ErrInvalidOutputs, minTotalOutputs, maxTotalOutputs, cfg.TotalOutputs)
	}
	if cfg.TotalSeconds <= 0 {
		return fmt.Errorf("%w: total seconds must be positive, got %v",
			ErrInvalidDuration, cfg.TotalSeconds)
	}
	if len(cfg.Acts) == 0 {
		return ErrNoActs
	}

	known := make(map[Act]bool, len(ActOrder()))
	for _, act := range ActOrder() {
		known[act] = true
	}

	for act, actCfg := range cfg.Acts {
		if !known[act] {
			return fmt.Errorf("%w: unknown act %q", ErrInvalidAct, act)
		}
		if err := validateAct(act, actCfg); err != nil {
			return err
		}
	}

	return nil
}

func validateAct(act Act, cfg ActConfig) error {
	if cfg.Percentage < 0 {
		return fmt.Errorf("%w: %s percentage must not be negative", ErrInvalidAct, act)
	}

	for st, stCfg := range cfg.ShotTypes {
		if err := validateShotType(act, st, stCfg); err != nil {
			return err
		}
	}

	for name := range cfg.Effects {
		if !rhythm.Known(name) {
			return fmt.Errorf("%w: %s flags unknown effect %q", ErrInvalidEffect, act, name)
		}
		if name == rhythm.FalseFinale && act != ActFinale {
			return fmt.Errorf("%w: %s is only valid in the finale act", ErrInvalidEffect, rhythm.FalseFinale)
		}
	}

	return nil
}

func validateShotType(act Act, st ShotType, cfg ShotTypeConfig) error {
	valid := false
	for _, known := range ShotTypeOrder() {
		if st == known {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown shot type %q in %s", ErrInvalidShotType, st, act)
	}

	if cfg.Percentage < 0 {
		return fmt.Errorf("%w: %s/%s percentage must not be negative", ErrInvalidShotType, act, st)
	}
	if cfg.MinDelay < 0 || cfg.MaxDelay < 0 {
		return fmt.Errorf("%w: %s/%s delays must not be negative", ErrInvalidShotType, act, st)
	}
	if cfg.MinDelay > cfg.MaxDelay {
		return fmt.Errorf("%w: %s/%s min delay %v exceeds max %v",
			ErrInvalidShotType, act, st, cfg.MinDelay, cfg.MaxDelay)
	}
	if cfg.MaxDelay > maxDelaySeconds {
		return fmt.Errorf("%w: %s/%s max delay %v exceeds %d seconds",
			ErrInvalidShotType, act, st, cfg.MaxDelay, maxDelaySeconds)
	}

	if st.IsRun() && cfg.Enabled {
		if cfg.MinLength < 1 {
			return fmt.Errorf("%w: %s/%s min length must be at least 1", ErrInvalidShotType, act, st)
		}
		if cfg.MinLength > cfg.MaxLength {
			return fmt.Errorf("%w: %s/%s min length %d exceeds max %d",
				ErrInvalidShotType, act, st, cfg.MinLength, cfg.MaxLength)
		}
		if cfg.MaxLength > maxRunLength {
			return fmt.Errorf("%w: %s/%s max length %d exceeds %d",
				ErrInvalidShotType, act, st, cfg.MaxLength, maxRunLength)
		}
	}

	return nil
}

// GenerateID creates a new UUID for a generation run.
func GenerateID() string {
	return uuid.New().String()
}
