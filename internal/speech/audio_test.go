package speech

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// wavHeader builds a minimal RIFF/WAVE header with the given fmt values.
func wavHeader(sampleRate int, channels int) []byte {
	b := make([]byte, 0, 44)
	b = append(b, []byte("RIFF")...)
	b = binary.LittleEndian.AppendUint32(b, 36)
	b = append(b, []byte("WAVE")...)
	b = append(b, []byte("fmt ")...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, 1) // PCM
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate*channels*2))
	b = binary.LittleEndian.AppendUint16(b, uint16(channels*2))
	b = binary.LittleEndian.AppendUint16(b, 16)
	b = append(b, []byte("data")...)
	b = binary.LittleEndian.AppendUint32(b, 0)
	return b
}

func m4aHeader() []byte {
	b := make([]byte, 0, 16)
	b = binary.BigEndian.AppendUint32(b, 24)
	b = append(b, []byte("ftyp")...)
	b = append(b, []byte("M4A mp42")...)
	return b
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatWAV, DetectFormat(wavHeader(44100, 2)))
	assert.Equal(t, FormatM4A, DetectFormat(m4aHeader()))
	assert.Equal(t, FormatUnknown, DetectFormat([]byte("OggS garbage bytes here")))
	assert.Equal(t, FormatUnknown, DetectFormat(nil))
	assert.Equal(t, FormatUnknown, DetectFormat([]byte("RIF")))

	// RIFF without WAVE is not a wav container.
	avi := append([]byte("RIFF\x00\x00\x00\x00"), []byte("AVI ")...)
	assert.Equal(t, FormatUnknown, DetectFormat(avi))
}

func TestDescribeWAV(t *testing.T) {
	d := Describe(wavHeader(44100, 2))
	assert.Equal(t, FormatWAV, d.Format)
	assert.Equal(t, 44100, d.SampleRateHz)
	assert.Equal(t, 2, d.ChannelCount)
}

func TestDescribeDefaults(t *testing.T) {
	// Raw PCM and unparseable containers get the canonical default.
	for _, audio := range [][]byte{nil, []byte("raw pcm samples"), m4aHeader()} {
		d := Describe(audio)
		assert.Equal(t, 16000, d.SampleRateHz)
		assert.Equal(t, 1, d.ChannelCount)
	}

	// Truncated wav: header magic present but no fmt chunk.
	truncated := []byte("RIFF\x00\x00\x00\x00WAVE")
	d := Describe(truncated)
	assert.Equal(t, FormatWAV, d.Format)
	assert.Equal(t, 16000, d.SampleRateHz)
	assert.Equal(t, 1, d.ChannelCount)
}
