package oscilloscope

// Control message types accepted from WebSocket clients.
const (
	ControlStart     = "start"
	ControlStop      = "stop"
	ControlConfigure = "configure"
)

// ControlMessage is a client command on the stream socket.
type ControlMessage struct {
	// Type is one of "start", "stop" or "configure".
	Type string `json:"type"`

	// Params carries the new waveform parameters for "configure".
	Params *Params `json:"params,omitempty"`
}

// StatusMessage acknowledges a control message or reports an error.
type StatusMessage struct {
	// Type is "status" or "error".
	Type string `json:"type"`

	// SessionID is the server-assigned stream session ID.
	SessionID string `json:"session_id,omitempty"`

	// Streaming reports whether frames are being sent.
	Streaming bool `json:"streaming"`

	// Params echoes the active waveform parameters.
	Params Params `json:"params"`

	// Error carries the problem for "error" messages.
	Error string `json:"error,omitempty"`
}
