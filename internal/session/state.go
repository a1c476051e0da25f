// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// State is the controller's position in the session.
type State int

const (
	Connecting State = iota
	AwaitingInput
	BufferingContinuation
	Executing
	ErrorReported
	Exiting
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case AwaitingInput:
		return "awaiting-input"
	case BufferingContinuation:
		return "buffering-continuation"
	case Executing:
		return "executing"
	case ErrorReported:
		return "error-reported"
	case Exiting:
		return "exiting"
	}
	return "unknown"
}

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = -1
)
