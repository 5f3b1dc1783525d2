package capture

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

// Utterance is one completed capture, ready for transcription.
// It is consumed exactly once and discarded whether transcription
// succeeds or fails.
type Utterance struct {
	// ID uniquely identifies this utterance in logs.
	ID uuid.UUID

	// Samples holds mono PCM16 audio.
	Samples []int16

	// SampleRate in Hz.
	SampleRate int
}

// NewUtterance wraps captured samples with a fresh ID.
func NewUtterance(samples []int16, sampleRate int) *Utterance {
	return &Utterance{
		ID:         uuid.New(),
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Duration returns the utterance length in seconds.
func (u *Utterance) Duration() float64 {
	if u.SampleRate == 0 {
		return 0
	}
	return float64(len(u.Samples)) / float64(u.SampleRate)
}

// WAV encodes the samples as a 16-bit mono WAV container, the
// canonical format every transcription backend accepts.
func (u *Utterance) WAV() ([]byte, error) {
	if len(u.Samples) == 0 {
		return nil, ErrNoSamples
	}

	ws := &memWriteSeeker{}
	enc := wav.NewEncoder(ws, u.SampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: u.SampleRate},
		Data:           make([]int, len(u.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range u.Samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return ws.Bytes(), nil
}

// memWriteSeeker is an in-memory io.WriteSeeker. The WAV encoder
// seeks back to patch chunk sizes on Close, so a plain bytes.Buffer
// does not work.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if need := m.pos + len(p); need > len(m.buf) {
		grown := make([]byte, need)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	}
	if abs < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	m.pos = int(abs)
	return abs, nil
}

// Bytes returns the encoded container.
func (m *memWriteSeeker) Bytes() []byte { return m.buf }
