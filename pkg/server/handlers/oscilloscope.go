package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"benlabs/caliper/pkg/oscilloscope"
	"benlabs/caliper/pkg/server/respond"
	"benlabs/caliper/pkg/telemetry/logging"
	"benlabs/caliper/pkg/telemetry/metrics"
)

// OscilloscopeConfig configures the stream handler.
type OscilloscopeConfig struct {
	// SampleRate is samples per second generated.
	SampleRate int

	// BatchSize is samples per frame.
	BatchSize int

	// MaxConnections caps concurrent sessions.
	MaxConnections int

	// PingInterval is the keepalive cadence.
	PingInterval time.Duration

	// CheckOrigin validates the Origin header. Nil accepts only
	// same-host origins (the gorilla default).
	CheckOrigin func(*http.Request) bool
}

// OscilloscopeHandler upgrades connections and streams waveform
// frames. Each connection is one session with its own generator;
// clients steer it with start/stop/configure control messages.
type OscilloscopeHandler struct {
	cfg      OscilloscopeConfig
	logger   *slog.Logger
	metrics  *metrics.Collector
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions int
}

// NewOscilloscopeHandler creates the handler.
func NewOscilloscopeHandler(cfg OscilloscopeConfig, logger *slog.Logger, collector *metrics.Collector) *OscilloscopeHandler {
	return &OscilloscopeHandler{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
}

func (h *OscilloscopeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.acquireSlot() {
		respond.Error(w, r, http.StatusServiceUnavailable,
			respond.ErrorTypeServerError, "too many concurrent stream sessions")
		return
	}
	defer h.releaseSlot()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	ctx := logging.WithSessionID(r.Context(), sessionID)

	if h.metrics != nil {
		h.metrics.StreamSessionStarted()
		defer h.metrics.StreamSessionEnded()
	}
	h.logger.InfoContext(ctx, "stream session started", "remote", r.RemoteAddr)

	session := &streamSession{
		id:        sessionID,
		conn:      conn,
		generator: oscilloscope.NewGenerator(h.cfg.SampleRate, oscilloscope.DefaultParams()),
		handler:   h,
		logger:    h.logger,
	}
	session.run(ctx)

	h.logger.InfoContext(ctx, "stream session ended")
}

func (h *OscilloscopeHandler) acquireSlot() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cfg.MaxConnections > 0 && h.sessions >= h.cfg.MaxConnections {
		return false
	}
	h.sessions++
	return true
}

func (h *OscilloscopeHandler) releaseSlot() {
	h.mu.Lock()
	h.sessions--
	h.mu.Unlock()
}

// ActiveSessions returns the current session count.
func (h *OscilloscopeHandler) ActiveSessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// streamSession owns one WebSocket connection. A reader goroutine
// forwards control messages to the main loop, which is the only
// writer: frames, acknowledgements and pings all leave from there.
type streamSession struct {
	id        string
	conn      *websocket.Conn
	generator *oscilloscope.Generator
	handler   *OscilloscopeHandler
	logger    *slog.Logger
}

func (s *streamSession) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := s.handler.cfg
	frameInterval := time.Second * time.Duration(cfg.BatchSize) / time.Duration(cfg.SampleRate)
	if frameInterval <= 0 {
		frameInterval = 50 * time.Millisecond
	}

	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	s.conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	})

	// Reader goroutine: control messages and close detection.
	controls := make(chan oscilloscope.ControlMessage)
	go func() {
		defer cancel()
		for {
			var msg oscilloscope.ControlMessage
			if err := s.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.DebugContext(ctx, "stream read error", "error", err)
				}
				return
			}
			select {
			case controls <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.sendStatus(false, "")

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	streaming := false
	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-controls:
			streaming = s.handleControl(ctx, msg, streaming)

		case <-frames.C:
			if !streaming {
				continue
			}
			frame := s.generator.Next(cfg.BatchSize)
			if err := s.writeJSON(frame); err != nil {
				return
			}
			if s.handler.metrics != nil {
				s.handler.metrics.RecordStreamedSamples(len(frame.Samples))
			}

		case <-pings.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// handleControl applies one control message and returns the new
// streaming state.
func (s *streamSession) handleControl(ctx context.Context, msg oscilloscope.ControlMessage, streaming bool) bool {
	switch msg.Type {
	case oscilloscope.ControlStart:
		streaming = true
		s.sendStatus(streaming, "")
	case oscilloscope.ControlStop:
		streaming = false
		s.sendStatus(streaming, "")
	case oscilloscope.ControlConfigure:
		if msg.Params == nil {
			s.sendStatus(streaming, "configure requires params")
			break
		}
		if err := s.generator.Configure(*msg.Params); err != nil {
			s.sendStatus(streaming, err.Error())
			break
		}
		s.sendStatus(streaming, "")
	default:
		s.logger.DebugContext(ctx, "unknown control message", "type", msg.Type)
		s.sendStatus(streaming, "unknown control type "+msg.Type)
	}
	return streaming
}

func (s *streamSession) sendStatus(streaming bool, errMsg string) {
	msg := oscilloscope.StatusMessage{
		Type:      "status",
		SessionID: s.id,
		Streaming: streaming,
		Params:    s.generator.Params(),
	}
	if errMsg != "" {
		msg.Type = "error"
		msg.Error = errMsg
	}
	_ = s.writeJSON(msg)
}

func (s *streamSession) writeJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}
