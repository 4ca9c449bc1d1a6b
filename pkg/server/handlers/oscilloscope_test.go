package handlers

import (
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"benlabs/caliper/pkg/oscilloscope"
)

func newStreamServer(t *testing.T, cfg OscilloscopeConfig) (*httptest.Server, *OscilloscopeHandler) {
	t.Helper()
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1000
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 10
	}
	if cfg.PingInterval == 0 {
		cfg.PingInterval = time.Minute
	}
	h := NewOscilloscopeHandler(cfg, slog.New(slog.DiscardHandler), nil)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing stream: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) oscilloscope.StatusMessage {
	t.Helper()
	var msg oscilloscope.StatusMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading status: %v", err)
	}
	return msg
}

func TestStreamHandshakeAndStart(t *testing.T) {
	srv, _ := newStreamServer(t, OscilloscopeConfig{})
	conn := dial(t, srv)

	// Initial status announces the session.
	status := readStatus(t, conn)
	if status.SessionID == "" {
		t.Fatal("initial status missing session ID")
	}
	if status.Streaming {
		t.Error("session should start paused")
	}

	if err := conn.WriteJSON(oscilloscope.ControlMessage{Type: oscilloscope.ControlStart}); err != nil {
		t.Fatalf("sending start: %v", err)
	}
	status = readStatus(t, conn)
	if !status.Streaming {
		t.Fatal("start was not acknowledged")
	}

	// Frames should follow.
	var frame oscilloscope.Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if len(frame.Samples) != 10 {
		t.Errorf("len(Samples) = %d, want batch size 10", len(frame.Samples))
	}
	if frame.Wave != oscilloscope.WaveSine {
		t.Errorf("Wave = %q, want default sine", frame.Wave)
	}
}

func TestStreamConfigure(t *testing.T) {
	srv, _ := newStreamServer(t, OscilloscopeConfig{})
	conn := dial(t, srv)
	readStatus(t, conn)

	params := oscilloscope.Params{Wave: oscilloscope.WaveSquare, Frequency: 100, Amplitude: 2}
	msg := oscilloscope.ControlMessage{Type: oscilloscope.ControlConfigure, Params: &params}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("sending configure: %v", err)
	}

	status := readStatus(t, conn)
	if status.Type != "status" {
		t.Fatalf("configure rejected: %+v", status)
	}
	if status.Params.Wave != oscilloscope.WaveSquare || status.Params.Frequency != 100 {
		t.Errorf("Params = %+v, want configured values", status.Params)
	}
}

func TestStreamConfigureInvalid(t *testing.T) {
	srv, _ := newStreamServer(t, OscilloscopeConfig{})
	conn := dial(t, srv)
	readStatus(t, conn)

	params := oscilloscope.Params{Wave: "saw", Frequency: 10, Amplitude: 1}
	msg := oscilloscope.ControlMessage{Type: oscilloscope.ControlConfigure, Params: &params}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("sending configure: %v", err)
	}

	status := readStatus(t, conn)
	if status.Type != "error" || status.Error == "" {
		t.Fatalf("invalid configure should produce an error message, got %+v", status)
	}
}

func TestStreamConnectionCap(t *testing.T) {
	srv, h := newStreamServer(t, OscilloscopeConfig{MaxConnections: 1})

	conn := dial(t, srv)
	readStatus(t, conn)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second connection should be rejected at the cap")
	}
	if resp == nil || resp.StatusCode != 503 {
		t.Errorf("rejection status = %v, want 503", resp)
	}
	if got := h.ActiveSessions(); got != 1 {
		t.Errorf("ActiveSessions() = %d, want 1", got)
	}
}
