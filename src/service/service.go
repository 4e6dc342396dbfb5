package service

import (
	"net/http"
	"sync"

	"github.com/mosaicnetworks/broadcast/src/node"
	"github.com/sirupsen/logrus"
)

// SnapshotSource provides the state reported by the service.
type SnapshotSource interface {
	Snapshot() node.Snapshot
}

// Service serves the stats of a node over HTTP.
type Service struct {
	sync.Mutex

	bindAddress string
	source      SnapshotSource
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, source SnapshotSource, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		source:      source,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the http.Handler serving the API, for mounting it on
// another server.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats writes the current node snapshot.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot := s.source.Snapshot()

	raw, err := snapshot.Marshal()
	if err != nil {
		s.logger.WithError(err).Error("Encoding snapshot")

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	w.Write(raw)
}
