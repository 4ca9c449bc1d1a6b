package oscilloscope

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// WaveType selects the generated waveform.
type WaveType string

const (
	WaveSine     WaveType = "sine"
	WaveSquare   WaveType = "square"
	WaveTriangle WaveType = "triangle"
	WaveNoise    WaveType = "noise"
)

// ParseWaveType validates a wave type string.
func ParseWaveType(s string) (WaveType, error) {
	switch WaveType(s) {
	case WaveSine, WaveSquare, WaveTriangle, WaveNoise:
		return WaveType(s), nil
	default:
		return "", fmt.Errorf("unknown wave type %q", s)
	}
}

// Params are the tunable waveform parameters.
type Params struct {
	// Wave is the waveform shape.
	Wave WaveType `json:"wave"`

	// Frequency is the signal frequency in Hz.
	Frequency float64 `json:"frequency"`

	// Amplitude scales the signal.
	Amplitude float64 `json:"amplitude"`

	// Offset shifts the signal vertically.
	Offset float64 `json:"offset"`
}

// DefaultParams returns the parameters a new session starts with.
func DefaultParams() Params {
	return Params{
		Wave:      WaveSine,
		Frequency: 10,
		Amplitude: 1,
		Offset:    0,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if _, err := ParseWaveType(string(p.Wave)); err != nil {
		return err
	}
	if p.Frequency <= 0 || p.Frequency > 10000 {
		return fmt.Errorf("frequency %g out of range (0, 10000]", p.Frequency)
	}
	if p.Amplitude <= 0 || p.Amplitude > 100 {
		return fmt.Errorf("amplitude %g out of range (0, 100]", p.Amplitude)
	}
	return nil
}

// Generator produces waveform samples with phase continuity across
// batches and parameter changes.
type Generator struct {
	mu         sync.Mutex
	params     Params
	sampleRate int
	phase      float64
	seq        uint64
	rng        *rand.Rand
}

// NewGenerator creates a generator at the given sample rate.
func NewGenerator(sampleRate int, params Params) *Generator {
	return &Generator{
		params:     params,
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Configure swaps the waveform parameters. The phase is preserved so
// the trace stays continuous.
func (g *Generator) Configure(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	g.params = params
	g.mu.Unlock()
	return nil
}

// Params returns the current parameters.
func (g *Generator) Params() Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Frame is one batch of samples sent to the client.
type Frame struct {
	// Seq numbers frames within a session.
	Seq uint64 `json:"seq"`

	// Wave is the shape the samples were generated with.
	Wave WaveType `json:"wave"`

	// SampleRate is samples per second.
	SampleRate int `json:"sample_rate"`

	// Samples are the generated values.
	Samples []float64 `json:"samples"`

	// Timestamp is when the frame was generated, in Unix
	// milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Next generates the next batch of n samples.
func (g *Generator) Next(n int) Frame {
	g.mu.Lock()
	defer g.mu.Unlock()

	params := g.params
	step := params.Frequency / float64(g.sampleRate)

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = params.Offset + params.Amplitude*g.value(params.Wave, g.phase)
		g.phase += step
		if g.phase >= 1 {
			g.phase -= math.Floor(g.phase)
		}
	}

	g.seq++
	return Frame{
		Seq:        g.seq,
		Wave:       params.Wave,
		SampleRate: g.sampleRate,
		Samples:    samples,
		Timestamp:  time.Now().UnixMilli(),
	}
}

// value returns the unit waveform at phase in [0, 1).
func (g *Generator) value(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		// Falls 1 to -1 over the first half period, rises back over
		// the second.
		return 4*math.Abs(phase-0.5) - 1
	case WaveNoise:
		return g.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
