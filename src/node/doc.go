// Package node implements the protocol state machine of a broadcast node.
//
// A BroadcastNode consumes one inbound envelope at a time through Process and
// returns the envelopes to send in response. It never performs I/O itself:
// the caller owns the transport and is expected to send the returned
// envelopes in order before processing the next inbound one.
//
// Delivery
//
// Every distinct value received in a broadcast message is added to the
// delivered set, which only grows. The first time a value is delivered, the
// node forwards it to all its neighbors except the one it came from. Later
// copies of the same value are acknowledged but not forwarded again.
//
// Anti-entropy
//
// Gossip messages are fire-and-forget, so the only evidence a node has that a
// peer knows a value is that the peer sent it the value itself. The node
// records these values per peer. Every time a broadcast message is processed,
// the node sweeps the peers it tracks and re-sends every delivered value the
// peer is not known to have, except the value being processed, which the
// regular fanout takes care of. The recorded sets are lower bounds, so the
// sweep can only cause extra messages, never miss a value. Peers that have
// never sent anything are not swept.
//
// Message ids
//
// Every envelope the node originates, replies and gossip alike, takes the next
// id from the node's IDGenerator, in emission order.
package node
