// Package oscilloscope generates the demo waveform stream served over
// WebSocket. A Generator produces batches of samples for one session;
// clients retune it with control messages without dropping the
// connection.
package oscilloscope
