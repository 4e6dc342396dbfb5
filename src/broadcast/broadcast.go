package broadcast

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mosaicnetworks/broadcast/src/config"
	"github.com/mosaicnetworks/broadcast/src/message"
	"github.com/mosaicnetworks/broadcast/src/net"
	"github.com/mosaicnetworks/broadcast/src/node"
	"github.com/mosaicnetworks/broadcast/src/service"
	"github.com/sirupsen/logrus"
)

// Engine wires a BroadcastNode to a Transport and, optionally, to the HTTP
// service. It feeds inbound envelopes to the node one at a time and sends the
// resulting envelopes in order.
type Engine struct {
	Config    *config.Config
	Node      *node.BroadcastNode
	Transport net.Transport
	Service   *service.Service

	// IDs overrides the message id generator of the node. Defaults to a
	// counter starting at 1.
	IDs node.IDGenerator

	nodeLock sync.Mutex
	logger   *logrus.Entry
}

// NewEngine creates an Engine. If trans is nil, Init creates a LineTransport
// on standard input and standard output.
func NewEngine(conf *config.Config, trans net.Transport) *Engine {
	engine := &Engine{
		Config:    conf,
		Transport: trans,
	}

	return engine
}

func (e *Engine) initTransport() error {
	if e.Transport != nil {
		return nil
	}

	e.Transport = net.NewLineTransport(os.Stdin, os.Stdout, e.logger.WithField("component", "transport"))

	return nil
}

func (e *Engine) initNode() error {
	if e.Config.PeerPrefix == "" {
		return fmt.Errorf("peer prefix cannot be empty")
	}

	e.Node = node.New(&node.Config{
		IDs:     e.IDs,
		Matcher: e.Config.Matcher(),
		Logger:  e.logger.WithField("component", "node"),
	})

	return nil
}

func (e *Engine) initService() error {
	if !e.Config.NoService {
		e.Service = service.NewService(e.Config.ServiceAddr, e, e.logger.WithField("component", "service"))
	}
	return nil
}

// Init creates the node, the transport if none was given, and the service
// unless it is disabled.
func (e *Engine) Init() error {
	if e.Config == nil {
		e.Config = config.NewDefaultConfig()
	}

	e.logger = e.Config.Logger()

	if err := e.initTransport(); err != nil {
		return err
	}

	if err := e.initNode(); err != nil {
		return err
	}

	if err := e.initService(); err != nil {
		return err
	}

	return nil
}

// Run starts the service, if any, and processes inbound envelopes until the
// transport closes its consumer channel or is shut down. It returns the first
// error from sending an envelope, in which case the remaining input is not
// processed.
func (e *Engine) Run() error {
	if e.Service != nil {
		go e.Service.Serve()
	}

	e.Transport.Listen()

	for env := range e.Transport.Consumer() {
		if err := e.process(env); err != nil {
			if errors.Is(err, net.ErrTransportShutdown) {
				e.logger.Debug("Transport shut down")
				return nil
			}
			e.logger.WithError(err).Error("Stopping")
			return err
		}
	}

	e.logger.Debug("No more input")

	return nil
}

func (e *Engine) process(env message.Envelope) error {
	e.nodeLock.Lock()
	out, err := e.Node.Process(env)
	e.nodeLock.Unlock()

	if err != nil {
		e.logProcessError(env, err)
		return nil
	}

	for _, o := range out {
		if err := e.Transport.Send(o); err != nil {
			return fmt.Errorf("sending %v: %w", o, err)
		}
	}

	return nil
}

func (e *Engine) logProcessError(env message.Envelope, err error) {
	entry := e.logger.WithError(err)
	if pErr, ok := err.(*node.ProcessError); ok {
		entry = entry.WithField("code", pErr.Code())
	}

	// Acks of our own gossip come back as replies, and are expected.
	if node.IsProcess(err, node.UnrecognizedMessage) && env.Body.InReplyTo != nil {
		entry.Debug("Ignoring reply")
		return
	}

	entry.Warn("Failed to process message")
}

// Snapshot returns a copy of the state of the node. It is safe to call while
// Run is processing messages.
func (e *Engine) Snapshot() node.Snapshot {
	e.nodeLock.Lock()
	defer e.nodeLock.Unlock()

	return e.Node.Snapshot()
}

// Shutdown closes the transport, which eventually makes Run return.
func (e *Engine) Shutdown() error {
	e.logger.Debug("Shutdown")
	return e.Transport.Close()
}
