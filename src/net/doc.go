// Package net implements the transports that carry envelopes to and from a
// broadcast node.
//
// A Transport delivers inbound envelopes on its Consumer channel and sends
// outbound ones with Send. There are two implementations:
//
// - Line: newline-delimited JSON over an io.Reader and an io.Writer. This is
// how the node talks to a Maelstrom-style harness over stdin and stdout.
//
// - Inmem: an in-memory network connecting several transports in the same
// process, with optional message loss. It is used for testing.
//
// Neither transport retries or acknowledges anything. Lost envelopes are
// recovered by the anti-entropy sweep of the node, not by the transport.
package net
