package net

import (
	"math/rand"
	"sync"

	"github.com/mosaicnetworks/broadcast/src/message"
	"github.com/sirupsen/logrus"
)

// DropFunc decides whether an envelope is lost in transit.
type DropFunc func(env message.Envelope) bool

// RandomDrop returns a DropFunc that loses each envelope with probability p.
func RandomDrop(seed int64, p float64) DropFunc {
	var lock sync.Mutex
	r := rand.New(rand.NewSource(seed))

	return func(message.Envelope) bool {
		lock.Lock()
		defer lock.Unlock()
		return r.Float64() < p
	}
}

// InmemTransport Implements the Transport interface, to allow nodes to be
// tested in-memory without going over a network. Envelopes are routed by their
// Dest to the transports registered with Connect. Envelopes addressed to
// anything else, such as clients, are kept aside and returned by Undelivered.
type InmemTransport struct {
	sync.RWMutex
	logger      *logrus.Entry
	localAddr   string
	peers       map[string]*InmemTransport
	drop        DropFunc
	undelivered []message.Envelope

	queueLock sync.Mutex
	queue     []message.Envelope
	notifyCh  chan struct{}

	consumeCh  chan message.Envelope
	listenOnce sync.Once

	shutdown     bool
	shutdownCh   chan struct{}
	shutdownLock sync.Mutex
}

// NewInmemTransport creates an InmemTransport reachable at addr.
func NewInmemTransport(addr string, logger *logrus.Entry) *InmemTransport {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &InmemTransport{
		logger:     logger.WithField("addr", addr),
		localAddr:  addr,
		peers:      make(map[string]*InmemTransport),
		notifyCh:   make(chan struct{}, 1),
		consumeCh:  make(chan message.Envelope),
		shutdownCh: make(chan struct{}),
	}
}

// LocalAddr returns the address of the transport.
func (i *InmemTransport) LocalAddr() string {
	return i.localAddr
}

// SetDrop installs a loss function applied to every outbound envelope. A nil
// function disables loss.
func (i *InmemTransport) SetDrop(drop DropFunc) {
	i.Lock()
	defer i.Unlock()
	i.drop = drop
}

// Connect is used to connect this transport to another transport for a given
// peer name. This allows for local routing.
func (i *InmemTransport) Connect(peer string, t *InmemTransport) {
	i.Lock()
	defer i.Unlock()
	i.peers[peer] = t
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(peer string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, peer)
}

// DisconnectAll is used to remove all routes to peers.
func (i *InmemTransport) DisconnectAll() {
	i.Lock()
	defer i.Unlock()
	i.peers = make(map[string]*InmemTransport)
}

// Listen implements the Transport interface.
func (i *InmemTransport) Listen() {
	i.listenOnce.Do(func() {
		go i.pump()
	})
}

// pump moves queued envelopes to the consumer channel until the transport is
// closed, then closes the channel.
func (i *InmemTransport) pump() {
	defer close(i.consumeCh)

	for {
		i.queueLock.Lock()
		if len(i.queue) == 0 {
			i.queueLock.Unlock()

			select {
			case <-i.notifyCh:
				continue
			case <-i.shutdownCh:
				return
			}
		}

		env := i.queue[0]
		i.queue = i.queue[1:]
		i.queueLock.Unlock()

		select {
		case i.consumeCh <- env:
		case <-i.shutdownCh:
			return
		}
	}
}

// Deliver queues env as if it had arrived from the network. It never blocks.
func (i *InmemTransport) Deliver(env message.Envelope) {
	if i.IsShutdown() {
		return
	}

	i.queueLock.Lock()
	i.queue = append(i.queue, env)
	i.queueLock.Unlock()

	select {
	case i.notifyCh <- struct{}{}:
	default:
	}
}

// Consumer implements the Transport interface.
func (i *InmemTransport) Consumer() <-chan message.Envelope {
	return i.consumeCh
}

// Send implements the Transport interface.
func (i *InmemTransport) Send(env message.Envelope) error {
	if i.IsShutdown() {
		return ErrTransportShutdown
	}

	i.Lock()
	if i.drop != nil && i.drop(env) {
		i.Unlock()
		i.logger.WithField("envelope", env.String()).Debug("Dropped")
		return nil
	}

	peer, ok := i.peers[env.Dest]
	if !ok {
		i.undelivered = append(i.undelivered, env)
		i.Unlock()
		return nil
	}
	i.Unlock()

	peer.Deliver(env)

	return nil
}

// Undelivered returns the envelopes sent to addresses that are not connected.
func (i *InmemTransport) Undelivered() []message.Envelope {
	i.RLock()
	defer i.RUnlock()

	res := make([]message.Envelope, len(i.undelivered))
	copy(res, i.undelivered)
	return res
}

// IsShutdown is used to check if the transport is shutdown.
func (i *InmemTransport) IsShutdown() bool {
	select {
	case <-i.shutdownCh:
		return true
	default:
		return false
	}
}

// Close implements the Transport interface. The consumer channel is closed
// once the transport stops.
func (i *InmemTransport) Close() error {
	i.shutdownLock.Lock()
	defer i.shutdownLock.Unlock()

	if !i.shutdown {
		close(i.shutdownCh)
		i.shutdown = true
	}
	return nil
}
