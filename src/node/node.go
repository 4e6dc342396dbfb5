package node

import (
	"github.com/mosaicnetworks/broadcast/src/message"
	"github.com/mosaicnetworks/broadcast/src/peers"
	"github.com/sirupsen/logrus"
)

// BroadcastNode is the state machine of one participant in the broadcast
// protocol. It is not safe for concurrent use: envelopes must be processed one
// at a time.
type BroadcastNode struct {
	// id is the node id assigned by Init. It is empty until then.
	id string

	// neighbors are the peers that newly delivered values are forwarded to.
	// It never contains id.
	neighbors *peers.Set

	// delivered holds every distinct value accepted so far.
	delivered valueSet

	// seen maps a peer id to the values that peer is known to have, because
	// it sent them to us.
	seen map[string]valueSet

	ids     IDGenerator
	matcher peers.Matcher
	logger  *logrus.Entry
}

// New returns a BroadcastNode that has not been initialised yet.
func New(conf *Config) *BroadcastNode {
	if conf == nil {
		conf = DefaultConfig()
	}

	ids := conf.IDs
	if ids == nil {
		ids = NewCounterIDGenerator(1)
	}

	matcher := conf.Matcher
	if matcher == nil {
		matcher = peers.NewPrefixMatcher(peers.DefaultPrefix)
	}

	logger := conf.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}

	return &BroadcastNode{
		neighbors: peers.NewSet(),
		delivered: make(valueSet),
		seen:      make(map[string]valueSet),
		ids:       ids,
		matcher:   matcher,
		logger:    logger,
	}
}

// Process handles one inbound envelope and returns the envelopes to send, in
// order. Envelopes whose payload is not a request the node handles produce a
// ProcessError and leave the node untouched.
func (n *BroadcastNode) Process(env message.Envelope) ([]message.Envelope, error) {
	switch p := env.Body.Payload.(type) {
	case message.Init:
		return n.processInit(env, p), nil
	case message.Broadcast:
		return n.processBroadcast(env, p), nil
	case message.Read:
		return n.processRead(env), nil
	case message.Topology:
		return n.processTopology(env, p), nil
	default:
		n.logger.WithField("envelope", env.String()).Debug("Unrecognized message")
		return nil, NewProcessError(UnrecognizedMessage, env)
	}
}

func (n *BroadcastNode) processInit(env message.Envelope, p message.Init) []message.Envelope {
	n.id = p.NodeID
	n.neighbors = peers.NewSet(p.NodeIDs...).Excluding(p.NodeID)

	n.logger.WithFields(logrus.Fields{
		"node_id":   n.id,
		"neighbors": n.neighbors.Sorted(),
	}).Debug("Init")

	return []message.Envelope{n.reply(env, message.InitOk{})}
}

func (n *BroadcastNode) processBroadcast(env message.Envelope, p message.Broadcast) []message.Envelope {
	out := []message.Envelope{n.reply(env, message.BroadcastOk{})}

	// A peer forwarding a value already has it.
	if n.matcher.IsPeer(env.Src) {
		n.seenBy(env.Src).add(p.Message)
	}

	from := n.localAddr(env)

	out = append(out, n.antiEntropy(from, p.Message)...)

	if !n.delivered.add(p.Message) {
		n.logger.WithFields(logrus.Fields{
			"from":    env.Src,
			"message": p.Message,
		}).Debug("Broadcast already delivered")
		return out
	}

	fanout := n.fanout(from, env.Src, p.Message)

	n.logger.WithFields(logrus.Fields{
		"from":    env.Src,
		"message": p.Message,
		"fanout":  len(fanout),
	}).Debug("Broadcast delivered")

	return append(out, fanout...)
}

func (n *BroadcastNode) processRead(env message.Envelope) []message.Envelope {
	return []message.Envelope{n.reply(env, message.ReadOk{Messages: n.delivered.sorted()})}
}

func (n *BroadcastNode) processTopology(env message.Envelope, p message.Topology) []message.Envelope {
	out := []message.Envelope{n.reply(env, message.TopologyOk{})}

	if n.id == "" {
		n.logger.Debug("Topology received before Init, ignored")
		return out
	}

	neighbors, ok := p.Topology[n.id]
	if !ok {
		n.logger.WithField("node_id", n.id).Debug("Topology does not map this node, ignored")
		return out
	}

	n.neighbors = peers.NewSet(neighbors...).Excluding(n.id)

	n.logger.WithField("neighbors", n.neighbors.Sorted()).Debug("Topology")

	return out
}

// reply addresses p back to the sender of req, correlated with req's msg_id.
func (n *BroadcastNode) reply(req message.Envelope, p message.Payload) message.Envelope {
	var inReplyTo *int64
	if req.Body.MsgID != nil {
		inReplyTo = message.ID(*req.Body.MsgID)
	}

	return message.Envelope{
		Src:  req.Dest,
		Dest: req.Src,
		Body: message.Body{
			MsgID:     message.ID(n.ids.Next()),
			InReplyTo: inReplyTo,
			Payload:   p,
		},
	}
}

// localAddr is the source address of gossip triggered by env: our own id, or
// the address env was sent to if Init has not been received.
func (n *BroadcastNode) localAddr(env message.Envelope) string {
	if n.id != "" {
		return n.id
	}
	return env.Dest
}

func (n *BroadcastNode) seenBy(peer string) valueSet {
	s, ok := n.seen[peer]
	if !ok {
		s = make(valueSet)
		n.seen[peer] = s
	}
	return s
}

// ID returns the node id and whether Init has been received.
func (n *BroadcastNode) ID() (string, bool) {
	return n.id, n.id != ""
}

// Neighbors returns the neighbor set in ascending order.
func (n *BroadcastNode) Neighbors() []string {
	return n.neighbors.Sorted()
}

// Delivered returns a copy of the delivered set in ascending order.
func (n *BroadcastNode) Delivered() []int64 {
	return n.delivered.sorted()
}

// Seen returns the values peer is known to have, in ascending order, and
// whether the peer is tracked at all.
func (n *BroadcastNode) Seen(peer string) ([]int64, bool) {
	s, ok := n.seen[peer]
	if !ok {
		return nil, false
	}
	return s.sorted(), true
}
