// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	// ErrUnsupportedLayout is returned for channel layouts that cannot be
	// panned. Only 1 to 4 channels are known.
	ErrUnsupportedLayout = errors.New("unsupported channel layout")

	// ErrNoControl means no stage in the chain implements the requested control.
	ErrNoControl = errors.New("no stage supports this control")

	// ErrContractViolation is returned when a stage is pulled after it
	// reported Finished or an error.
	ErrContractViolation = errors.New("stage pulled after it ended")

	// ErrPaused is returned by Read when the chain reports Paused.
	ErrPaused = errors.New("stage is paused")

	// ErrInvalidSpeed is returned for speeds that are not positive.
	ErrInvalidSpeed = errors.New("speed must be positive")

	// ErrStalled means a source kept returning no samples without ending.
	ErrStalled = errors.New("source returned no samples")
)
