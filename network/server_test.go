package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/status"
)

type testServer struct {
	srv  *IngestServer
	cell *sensor.Cell
	reg  *status.Registry
	http *httptest.Server
}

func newTestServer(t *testing.T, mutate func(*Config)) *testServer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Rate = sensor.RateSlow
	if mutate != nil {
		mutate(cfg)
	}
	cell := sensor.NewCell()
	reg := status.NewRegistry()
	srv := NewIngestServer(cfg, cell, reg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{srv: srv, cell: cell, reg: reg, http: ts}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.http.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	data, err := Encode(msgType, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	writeRaw(t, conn, data)
}

func writeRaw(t *testing.T, conn *websocket.Conn, data []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func receive(t *testing.T, conn *websocket.Conn) (Envelope, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		return Envelope{}, err
	}
	return DecodeEnvelope(data)
}

// handshake sends hello and returns the welcome
func handshake(t *testing.T, conn *websocket.Conn) Welcome {
	t.Helper()
	send(t, conn, MsgHello, Hello{V: ProtocolVersion, Name: "test"})
	env, err := receive(t, conn)
	if err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if env.T != MsgWelcome {
		t.Fatalf("got %q, want welcome", env.T)
	}
	w, err := DecodePayload[Welcome](env)
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	return w
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionStreamsTiltIntoCell(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t)

	w := handshake(t, conn)
	if _, err := uuid.Parse(w.Session); err != nil {
		t.Errorf("session id %q is not a uuid: %v", w.Session, err)
	}
	if w.IntervalMs != 1000 || w.Rate != "slow" {
		t.Errorf("welcome = %+v, want slow 1000ms", w)
	}

	send(t, conn, MsgTilt, Tilt{X: 0.5, Y: -0.25, Z: 9.8})
	waitFor(t, "tilt sample", func() bool {
		s := ts.cell.Load()
		return s.X == 0.5 && s.Y == -0.25 && s.Z == 9.8
	})

	if got := ts.reg.Ints.Get("sensor.connections").Load(); got != 1 {
		t.Errorf("connections = %d, want 1", got)
	}
	if got := ts.reg.Strings.Get("sensor.session").Load(); got != w.Session {
		t.Errorf("session metric = %q, want %q", got, w.Session)
	}

	conn.Close(websocket.StatusNormalClosure, "done")
	waitFor(t, "reset after disconnect", func() bool {
		return ts.cell.Load() == sensor.Sample{}
	})
	waitFor(t, "peer released", func() bool {
		return ts.reg.Ints.Get("sensor.peers").Load() == 0
	})
}

func TestResetWaitsForLastPeer(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.MaxPeers = 2 })

	steering := ts.dial(t)
	handshake(t, steering)
	idle := ts.dial(t)
	handshake(t, idle)
	waitFor(t, "two peers", func() bool {
		return ts.reg.Ints.Get("sensor.peers").Load() == 2
	})

	send(t, steering, MsgTilt, Tilt{X: 0.5})
	waitFor(t, "tilt sample", func() bool { return ts.cell.Load().X == 0.5 })

	idle.Close(websocket.StatusNormalClosure, "done")
	waitFor(t, "idle peer released", func() bool {
		return ts.reg.Ints.Get("sensor.peers").Load() == 1
	})
	if s := ts.cell.Load(); s.X != 0.5 {
		t.Errorf("sample after one of two peers left = %+v, want X 0.5", s)
	}

	steering.Close(websocket.StatusNormalClosure, "done")
	waitFor(t, "reset after last peer", func() bool {
		return ts.cell.Load() == sensor.Sample{}
	})
}

func TestGarbledTiltReadsAsZero(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t)
	handshake(t, conn)

	send(t, conn, MsgTilt, Tilt{X: 1, Y: 1})
	waitFor(t, "first sample", func() bool { return ts.cell.Load().X == 1 })

	writeRaw(t, conn, []byte(`{"t":"tilt","p":{"x":"left"}}`))
	waitFor(t, "zeroed sample", func() bool {
		s := ts.cell.Load()
		return s.X == 0 && s.Y == 0
	})

	writeRaw(t, conn, []byte("not json"))
	waitFor(t, "three samples", func() bool {
		return ts.reg.Ints.Get("sensor.samples").Load() == 3
	})
	if s := ts.cell.Load(); s.X != 0 || s.Y != 0 {
		t.Errorf("sample after garbage = %+v, want zero", s)
	}
}

func TestUnknownMessagesIgnored(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t)
	handshake(t, conn)

	send(t, conn, MsgTilt, Tilt{X: 0.75})
	waitFor(t, "sample", func() bool { return ts.cell.Load().X == 0.75 })
	send(t, conn, "shake", Tilt{X: 9})
	send(t, conn, MsgTilt, Tilt{X: 0.25})
	waitFor(t, "second sample", func() bool { return ts.cell.Load().X == 0.25 })

	if got := ts.reg.Ints.Get("sensor.samples").Load(); got != 2 {
		t.Errorf("samples = %d, want 2", got)
	}
}

func TestHandshakeRejections(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		hello  Hello
		reason string
	}{
		{"Version mismatch", MsgHello, Hello{V: ProtocolVersion + 1}, "version"},
		{"Tilt before hello", MsgTilt, Hello{V: ProtocolVersion}, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			conn := ts.dial(t)
			send(t, conn, tt.msg, tt.hello)

			env, err := receive(t, conn)
			if err != nil {
				t.Fatalf("read error message: %v", err)
			}
			if env.T != MsgError {
				t.Fatalf("got %q, want error", env.T)
			}
			e, err := DecodePayload[Error](env)
			if err != nil || !strings.Contains(e.Reason, tt.reason) {
				t.Errorf("reason = %q (%v), want mention of %q", e.Reason, err, tt.reason)
			}

			_, err = receive(t, conn)
			if got := websocket.CloseStatus(err); got != websocket.StatusPolicyViolation {
				t.Errorf("close status = %v (%v), want policy violation", got, err)
			}
			if got := ts.reg.Ints.Get("sensor.rejected").Load(); got != 1 {
				t.Errorf("rejected = %d, want 1", got)
			}
		})
	}
}

func TestMaxPeers(t *testing.T) {
	ts := newTestServer(t, func(c *Config) { c.MaxPeers = 1 })

	first := ts.dial(t)
	handshake(t, first)

	second := ts.dial(t)
	_, err := receive(t, second)
	if got := websocket.CloseStatus(err); got != websocket.StatusTryAgainLater {
		t.Fatalf("close status = %v (%v), want try again later", got, err)
	}

	// The admitted device keeps streaming
	send(t, first, MsgTilt, Tilt{Y: 0.5})
	waitFor(t, "sample", func() bool { return ts.cell.Load().Y == 0.5 })
}

func TestPausedCellDropsSamples(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t)
	handshake(t, conn)

	ts.cell.SetPaused(true)
	send(t, conn, MsgTilt, Tilt{X: 1})
	waitFor(t, "sample counted", func() bool {
		return ts.reg.Ints.Get("sensor.samples").Load() == 1
	})
	if s := ts.cell.Load(); s.X != 0 {
		t.Errorf("paused cell = %+v, want zero", s)
	}
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.reg.Ints.Get("game.score").Store(42)
	ts.reg.Bools.Get("engine.running").Store(true)

	resp, err := http.Get(ts.http.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var rep status.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Ints["game.score"] != 42 || !rep.Bools["engine.running"] {
		t.Errorf("report = %+v", rep)
	}

	post, err := http.Post(ts.http.URL+"/status", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /status: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status code = %d, want 405", post.StatusCode)
	}
}

func TestRunLifecycle(t *testing.T) {
	t.Run("Disabled returns at once", func(t *testing.T) {
		srv := NewIngestServer(DefaultConfig(), sensor.NewCell(), status.NewRegistry())
		if err := srv.Run(context.Background()); err != nil {
			t.Errorf("Run = %v", err)
		}
		if srv.Addr() != "" {
			t.Errorf("disabled server bound %q", srv.Addr())
		}
	})

	t.Run("Stops on cancel", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Enabled = true
		cfg.Address = "127.0.0.1:0"
		srv := NewIngestServer(cfg, sensor.NewCell(), status.NewRegistry())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		waitFor(t, "listener", func() bool { return srv.Addr() != "" })
		resp, err := http.Get("http://" + srv.Addr() + "/status")
		if err != nil {
			t.Fatalf("GET /status: %v", err)
		}
		resp.Body.Close()

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})

	t.Run("Bad address", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Enabled = true
		cfg.Address = "256.0.0.1:bad"
		srv := NewIngestServer(cfg, sensor.NewCell(), status.NewRegistry())
		if err := srv.Run(context.Background()); err == nil {
			t.Error("Run should fail to listen")
		}
	})
}
