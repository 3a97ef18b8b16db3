// Package provider implements the wallet connection orchestrator: a session
// state machine over adapters, a capability gate in front of every
// adapter-dependent call, and the unified operation facade applications use
// for accounts, message signing, and transaction execution.
package provider

import "time"

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Recorder receives orchestrator activity for metrics collection.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordConnect counts one connect attempt and its duration.
	RecordConnect(wallet string, success bool, elapsed time.Duration)

	// RecordOperation counts one facade operation.
	RecordOperation(op string, success bool)

	// RecordStatus reports the session status after a transition.
	RecordStatus(status Status)
}
