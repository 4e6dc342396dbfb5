package node

import (
	"sort"

	"github.com/mosaicnetworks/broadcast/src/message"
	"github.com/sirupsen/logrus"
)

// antiEntropy returns a broadcast message for every delivered value that a
// tracked peer is not known to have. current is left out: the fanout of the
// message being processed covers it.
func (n *BroadcastNode) antiEntropy(from string, current int64) []message.Envelope {
	tracked := make([]string, 0, len(n.seen))
	for p := range n.seen {
		tracked = append(tracked, p)
	}
	sort.Strings(tracked)

	out := []message.Envelope{}
	for _, p := range tracked {
		missing := n.delivered.missing(n.seen[p], current)
		if len(missing) == 0 {
			continue
		}

		n.logger.WithFields(logrus.Fields{
			"peer":    p,
			"missing": missing,
		}).Debug("Anti-entropy")

		for _, v := range missing {
			out = append(out, n.gossip(from, p, v))
		}
	}
	return out
}

// fanout forwards value to every neighbor except sender.
func (n *BroadcastNode) fanout(from string, sender string, value int64) []message.Envelope {
	out := []message.Envelope{}
	for _, p := range n.neighbors.Sorted() {
		if p == sender {
			continue
		}
		out = append(out, n.gossip(from, p, value))
	}
	return out
}

// gossip builds a new broadcast request. It is not a reply, so it carries no
// in_reply_to.
func (n *BroadcastNode) gossip(from string, to string, value int64) message.Envelope {
	return message.Envelope{
		Src:  from,
		Dest: to,
		Body: message.Body{
			MsgID:   message.ID(n.ids.Next()),
			Payload: message.Broadcast{Message: value},
		},
	}
}
