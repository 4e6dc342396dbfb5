package node

import (
	"testing"

	"github.com/mosaicnetworks/broadcast/src/common"
	"github.com/mosaicnetworks/broadcast/src/peers"
	"github.com/sirupsen/logrus"
)

// Config holds the collaborators of a BroadcastNode.
type Config struct {
	// IDs assigns msg_id to every outbound envelope.
	IDs IDGenerator

	// Matcher tells network peers apart from clients. Only senders it accepts
	// are tracked for anti-entropy.
	Matcher peers.Matcher

	Logger *logrus.Entry
}

// DefaultConfig returns a Config with a counter starting at 1, the default
// peer prefix, and a logger at info level.
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.InfoLevel

	return &Config{
		IDs:     NewCounterIDGenerator(1),
		Matcher: peers.NewPrefixMatcher(peers.DefaultPrefix),
		Logger:  logrus.NewEntry(logger),
	}
}

// TestConfig returns a DefaultConfig that logs through t.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, common.TestLogLevel)
	return config
}
