package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"

	"github.com/lixenwraith/dart-pop/constants"
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/status"
)

// IngestServer accepts device sessions on /ws and serves metrics on /status
type IngestServer struct {
	cfg  *Config
	cell *sensor.Cell
	reg  *status.Registry

	peers atomic.Int32
	wg    sync.WaitGroup
	addr  atomic.Pointer[string]

	// Cached metric pointers
	statConnections *atomic.Int64
	statPeers       *atomic.Int64
	statSamples     *atomic.Int64
	statRejected    *atomic.Int64
	statSession     *status.AtomicString
}

// NewIngestServer creates a server writing into cell
func NewIngestServer(cfg *Config, cell *sensor.Cell, reg *status.Registry) *IngestServer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &IngestServer{
		cfg:             cfg,
		cell:            cell,
		reg:             reg,
		statConnections: reg.Ints.Get("sensor.connections"),
		statPeers:       reg.Ints.Get("sensor.peers"),
		statSamples:     reg.Ints.Get("sensor.samples"),
		statRejected:    reg.Ints.Get("sensor.rejected"),
		statSession:     reg.Strings.Get("sensor.session"),
	}
}

// Handler routes the websocket and status endpoints
func (s *IngestServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleSession)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Addr returns the bound address once Run is listening, empty before
func (s *IngestServer) Addr() string {
	if p := s.addr.Load(); p != nil {
		return *p
	}
	return ""
}

// Run listens until ctx is cancelled, then drains sessions
// A disabled server returns immediately
func (s *IngestServer) Run(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("ingest listen %s: %w", s.cfg.Address, err)
	}
	addr := ln.Addr().String()
	s.addr.Store(&addr)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.HelloTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	core.Go(func() {
		errCh <- srv.Serve(ln)
	})
	log.Printf("ingest: listening on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ingest serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.IngestShutdownGrace)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// Hijacked websocket connections are not tracked by Shutdown
	s.wg.Wait()
	log.Printf("ingest: stopped")
	return err
}

func (s *IngestServer) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Printf("ingest: accept: %v", err)
		return
	}
	conn.SetReadLimit(s.cfg.ReadLimit)

	if int(s.peers.Add(1)) > s.cfg.MaxPeers {
		s.peers.Add(-1)
		s.statRejected.Add(1)
		conn.Close(websocket.StatusTryAgainLater, "too many devices")
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.statConnections.Add(1)
	s.statPeers.Add(1)

	sess := newSession(conn, s)
	defer func() {
		// The last departed device must not keep steering with its final reading
		if s.peers.Add(-1) == 0 {
			s.cell.Reset()
		}
		s.statPeers.Add(-1)
		log.Printf("ingest: session %s closed", sess.id)
	}()

	if err := sess.run(r.Context()); err != nil {
		log.Printf("ingest: %v", err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *IngestServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.reg.Snapshot()); err != nil {
		log.Printf("ingest: status encode: %v", err)
	}
}
