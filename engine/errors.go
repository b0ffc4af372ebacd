// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrBusy is returned by engines that render one stage at a time when
	// a stage is still running.
	ErrBusy = errors.New("engine is already rendering a stage")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine is closed")

	// ErrChannelMismatch is returned when a stage cannot be mapped onto the
	// device channel layout.
	ErrChannelMismatch = errors.New("stage channels do not match the device")
)
