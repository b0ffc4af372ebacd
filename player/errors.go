// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrAlreadyPlaying is returned when a player is handed to an engine twice.
	ErrAlreadyPlaying = errors.New("player was already handed to an engine")

	// ErrNoCompletion is returned by PlayBlocking for players built
	// WithoutCompletion.
	ErrNoCompletion = errors.New("player has no completion notification")
)
