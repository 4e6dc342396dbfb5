package net

import (
	"errors"

	"github.com/mosaicnetworks/broadcast/src/message"
)

var (
	// ErrTransportShutdown is returned when operations on a transport are
	// invoked after it's been terminated.
	ErrTransportShutdown = errors.New("transport shutdown")
)

// Transport provides an interface for exchanging envelopes with the rest of
// the network.
type Transport interface {

	// Listen starts delivering inbound envelopes on the Consumer channel.
	Listen()

	// Consumer returns the channel of inbound envelopes, in the order they were
	// received. It is closed when there is no more input.
	Consumer() <-chan message.Envelope

	// Send transmits an envelope to env.Dest.
	Send(env message.Envelope) error

	// Close permanently closes a transport, stopping any associated goroutines
	// and freeing other resources.
	Close() error
}
