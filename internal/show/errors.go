package show

import "errors"

// Domain errors for the show package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, show.ErrInvalidConfig) {
//	    // reject the configuration
//	}
var (
	// ErrInvalidConfig is returned when show configuration validation fails.
	ErrInvalidConfig = errors.New("show: invalid config")

	// ErrInvalidOutputs is returned when the output pool size is out of range.
	ErrInvalidOutputs = errors.New("show: invalid output count")

	// ErrInvalidDuration is returned when the target duration is not positive.
	ErrInvalidDuration = errors.New("show: invalid duration")

	// ErrInvalidAct is returned when an act's configuration is invalid.
	ErrInvalidAct = errors.New("show: invalid act")

	// ErrInvalidShotType is returned when a shot type's configuration is invalid.
	ErrInvalidShotType = errors.New("show: invalid shot type")

	// ErrInvalidEffect is returned when an unknown or misplaced effect is flagged.
	ErrInvalidEffect = errors.New("show: invalid effect")

	// ErrNoActs is returned when the configuration defines no acts.
	ErrNoActs = errors.New("show: no acts configured")
)
