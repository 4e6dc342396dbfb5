package net

import (
	"bufio"
	"io"
	"sync"

	"github.com/mosaicnetworks/broadcast/src/message"
	"github.com/sirupsen/logrus"
)

const (
	// maxLineSize bounds a single inbound line. Topology maps of large
	// clusters are the biggest messages.
	maxLineSize = 16 * 1024 * 1024
)

// LineTransport exchanges newline-delimited JSON envelopes over a reader and a
// writer, typically stdin and stdout. Malformed lines are logged and skipped.
type LineTransport struct {
	logger *logrus.Entry

	r io.Reader

	w     *bufio.Writer
	wLock sync.Mutex

	consumeCh  chan message.Envelope
	listenOnce sync.Once

	shutdown     bool
	shutdownCh   chan struct{}
	shutdownLock sync.Mutex
}

// NewLineTransport creates a LineTransport reading from r and writing to w.
func NewLineTransport(r io.Reader, w io.Writer, logger *logrus.Entry) *LineTransport {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &LineTransport{
		logger:     logger,
		r:          r,
		w:          bufio.NewWriter(w),
		consumeCh:  make(chan message.Envelope),
		shutdownCh: make(chan struct{}),
	}
}

// Listen implements the Transport interface. It starts reading lines on a
// separate goroutine. Calling it more than once has no effect.
func (l *LineTransport) Listen() {
	l.listenOnce.Do(func() {
		go l.listen()
	})
}

func (l *LineTransport) listen() {
	defer close(l.consumeCh)

	scanner := bufio.NewScanner(l.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		env, err := message.Decode(line)
		if err != nil {
			l.logger.WithError(err).WithField("line", string(line)).Error("Failed to decode envelope")
			continue
		}

		l.logger.WithField("envelope", env.String()).Debug("Received")

		select {
		case l.consumeCh <- env:
		case <-l.shutdownCh:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		l.logger.WithError(err).Error("Failed to read input")
		return
	}

	l.logger.Debug("End of input")
}

// Consumer implements the Transport interface.
func (l *LineTransport) Consumer() <-chan message.Envelope {
	return l.consumeCh
}

// Send implements the Transport interface. It writes the envelope as one line
// and flushes it.
func (l *LineTransport) Send(env message.Envelope) error {
	if l.IsShutdown() {
		return ErrTransportShutdown
	}

	line, err := message.Encode(env)
	if err != nil {
		return err
	}

	l.wLock.Lock()
	defer l.wLock.Unlock()

	if _, err := l.w.Write(line); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := l.w.Flush(); err != nil {
		return err
	}

	l.logger.WithField("envelope", env.String()).Debug("Sent")

	return nil
}

// IsShutdown is used to check if the transport is shutdown.
func (l *LineTransport) IsShutdown() bool {
	select {
	case <-l.shutdownCh:
		return true
	default:
		return false
	}
}

// Close implements the Transport interface. It does not close the underlying
// reader or writer.
func (l *LineTransport) Close() error {
	l.shutdownLock.Lock()
	defer l.shutdownLock.Unlock()

	if !l.shutdown {
		close(l.shutdownCh)
		l.shutdown = true
	}
	return nil
}
