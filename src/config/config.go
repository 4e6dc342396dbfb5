package config

import (
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/broadcast/src/common"
	"github.com/mosaicnetworks/broadcast/src/peers"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultLogFile     = ""
	DefaultPeerPrefix  = peers.DefaultPrefix
	DefaultServiceAddr = "127.0.0.1:8000"
	DefaultNoService   = true
)

// Config contains all the configuration properties of a broadcast node.
type Config struct {
	// DataDir is the top-level directory containing the configuration file.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, if set, receives a copy of every log entry.
	LogFile string `mapstructure:"log-file"`

	// PeerPrefix is the prefix of the ids of network participants. Senders
	// whose id does not have it are treated as clients, and are not tracked by
	// the anti-entropy sweep.
	PeerPrefix string `mapstructure:"peer-prefix"`

	// NoService disables the HTTP stats service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the optional HTTP service.
	ServiceAddr string `mapstructure:"service-listen"`

	logger *logrus.Logger
	out    io.Writer
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		LogFile:     DefaultLogFile,
		PeerPrefix:  DefaultPeerPrefix,
		NoService:   DefaultNoService,
		ServiceAddr: DefaultServiceAddr,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetLogOutput sets where the logger writes, instead of standard error. It
// must be called before the first call to Logger.
func (c *Config) SetLogOutput(w io.Writer) {
	c.out = w
}

// Matcher returns the peer matcher built from PeerPrefix.
func (c *Config) Matcher() peers.Matcher {
	return peers.NewPrefixMatcher(c.PeerPrefix)
}

// Logger returns a formatted logrus Entry, with prefix set to "broadcast".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		c.logger.Out = os.Stderr
		if c.out != nil {
			c.logger.Out = c.out
		}

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				pathMap[level] = c.LogFile
			}
			c.logger.Hooks.Add(lfshook.NewHook(
				pathMap,
				&logrus.TextFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "broadcast")
}

// DefaultDataDir return the default directory name for top-level broadcast
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Broadcast")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Broadcast")
		} else {
			return filepath.Join(home, ".broadcast")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
