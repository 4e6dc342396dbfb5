package node

import (
	"fmt"

	maelstrom "github.com/jepsen-io/maelstrom/demo/go"
	"github.com/mosaicnetworks/broadcast/src/message"
)

// ProcessErrType enumerates the reasons Process can fail.
type ProcessErrType uint32

const (
	// UnrecognizedMessage is returned for payloads the node does not handle as
	// requests, such as replies.
	UnrecognizedMessage ProcessErrType = iota
)

// ProcessError is returned by Process. It carries the offending envelope.
type ProcessError struct {
	errType  ProcessErrType
	envelope message.Envelope
}

// NewProcessError ...
func NewProcessError(errType ProcessErrType, env message.Envelope) *ProcessError {
	return &ProcessError{
		errType:  errType,
		envelope: env,
	}
}

// Error ...
func (e *ProcessError) Error() string {
	m := ""
	switch e.errType {
	case UnrecognizedMessage:
		m = "received unknown message"
	}
	return fmt.Sprintf("%s: %v", m, e.envelope)
}

// Envelope returns the envelope that could not be processed.
func (e *ProcessError) Envelope() message.Envelope {
	return e.envelope
}

// Code returns the maelstrom error code matching the error.
func (e *ProcessError) Code() int {
	switch e.errType {
	case UnrecognizedMessage:
		return maelstrom.NotSupported
	default:
		return maelstrom.Crash
	}
}

// IsProcess checks that an error is a ProcessError of the given type.
func IsProcess(err error, t ProcessErrType) bool {
	processErr, ok := err.(*ProcessError)
	return ok && processErr.errType == t
}
