package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/lixenwraith/dart-pop/sensor"
)

var (
	ErrNoHello         = errors.New("first message must be hello")
	ErrVersionMismatch = errors.New("protocol version mismatch")
)

// session is one connected device
type session struct {
	id   string
	name string
	conn *websocket.Conn
	srv  *IngestServer
}

// run performs the handshake then streams readings into the cell until the peer leaves
func (s *session) run(ctx context.Context) error {
	hello, err := s.readHello(ctx)
	if err != nil {
		s.reject(ctx, err)
		return err
	}
	s.name = hello.Name

	rate := s.srv.cfg.Rate
	if err := s.send(ctx, MsgWelcome, Welcome{
		Session:    s.id,
		IntervalMs: rate.Interval().Milliseconds(),
		Rate:       rate.String(),
	}); err != nil {
		return err
	}
	s.srv.statSession.Store(s.id)
	log.Printf("ingest: session %s (%q) open", s.id, s.name)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("session %s read: %w", s.id, err)
		}
		s.handle(data)
	}
}

// readHello waits for the opening message within the hello timeout
func (s *session) readHello(ctx context.Context) (Hello, error) {
	hctx, cancel := context.WithTimeout(ctx, s.srv.cfg.HelloTimeout)
	defer cancel()

	_, data, err := s.conn.Read(hctx)
	if err != nil {
		return Hello{}, fmt.Errorf("read hello: %w", err)
	}
	env, err := DecodeEnvelope(data)
	if err != nil {
		return Hello{}, err
	}
	if env.T != MsgHello {
		return Hello{}, ErrNoHello
	}
	hello, err := DecodePayload[Hello](env)
	if err != nil {
		return Hello{}, err
	}
	if hello.V != ProtocolVersion {
		return Hello{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, hello.V, ProtocolVersion)
	}
	return hello, nil
}

// handle stores one reading; an unreadable tilt counts as no tilt
func (s *session) handle(data []byte) {
	env, err := DecodeEnvelope(data)
	if err == nil && env.T != MsgTilt {
		return
	}

	sample := sensor.Sample{At: time.Now()}
	if err == nil {
		if tilt, perr := DecodePayload[Tilt](env); perr == nil {
			sample.X, sample.Y, sample.Z = tilt.X, tilt.Y, tilt.Z
		}
	}
	s.srv.cell.Store(sample)
	s.srv.statSamples.Add(1)
}

// reject tells the peer why and closes with a policy violation
func (s *session) reject(ctx context.Context, cause error) {
	s.srv.statRejected.Add(1)
	log.Printf("ingest: session %s rejected: %v", s.id, cause)
	if ctx.Err() == nil {
		_ = s.send(ctx, MsgError, Error{Reason: cause.Error()})
	}
	s.conn.Close(websocket.StatusPolicyViolation, "handshake failed")
}

func (s *session) send(ctx context.Context, t string, payload any) error {
	data, err := Encode(t, payload)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, s.srv.cfg.WriteTimeout)
	defer cancel()
	if err := s.conn.Write(wctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("session %s write %s: %w", s.id, t, err)
	}
	return nil
}

func newSession(conn *websocket.Conn, srv *IngestServer) *session {
	return &session{
		id:   uuid.NewString(),
		conn: conn,
		srv:  srv,
	}
}
