package speech

import (
	"bytes"
	"encoding/binary"
)

// Format is the detected audio container format.
type Format string

const (
	FormatWAV     Format = "wav"
	FormatM4A     Format = "m4a"
	FormatUnknown Format = "unknown"
)

// Descriptor carries the transient audio metadata needed for a recognition
// call. It is derived from the raw bytes and never persisted.
type Descriptor struct {
	Format       Format
	SampleRateHz int
	ChannelCount int
}

const (
	defaultSampleRate = 16000
	defaultChannels   = 1
)

// DetectFormat inspects magic bytes: "RIFF"...."WAVE" is a WAV container,
// "ftyp" at offset 4 is an MP4/M4A container, anything else is unknown.
func DetectFormat(audio []byte) Format {
	if len(audio) >= 12 && bytes.Equal(audio[0:4], []byte("RIFF")) && bytes.Equal(audio[8:12], []byte("WAVE")) {
		return FormatWAV
	}
	if len(audio) >= 8 && bytes.Equal(audio[4:8], []byte("ftyp")) {
		return FormatM4A
	}
	return FormatUnknown
}

// Describe detects the container format and reads sample rate and channel
// count from the WAV header. Anything that cannot be parsed as PCM gets the
// 16 kHz mono default.
func Describe(audio []byte) Descriptor {
	rate, channels := pcmInfo(audio)
	return Descriptor{
		Format:       DetectFormat(audio),
		SampleRateHz: rate,
		ChannelCount: channels,
	}
}

// pcmInfo walks the RIFF chunks looking for "fmt " and reads the channel
// count and sample rate from it. Raw PCM and unparseable containers default
// to 16000 Hz / 1 channel.
func pcmInfo(audio []byte) (sampleRate, channels int) {
	if DetectFormat(audio) != FormatWAV {
		return defaultSampleRate, defaultChannels
	}

	// RIFF header is 12 bytes, then a sequence of [id:4][size:4][data] chunks.
	pos := 12
	for pos+8 <= len(audio) {
		id := string(audio[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(audio[pos+4 : pos+8]))
		if id == "fmt " && size >= 16 && pos+8+16 <= len(audio) {
			channels = int(binary.LittleEndian.Uint16(audio[pos+10 : pos+12]))
			sampleRate = int(binary.LittleEndian.Uint32(audio[pos+12 : pos+16]))
			if sampleRate <= 0 {
				sampleRate = defaultSampleRate
			}
			if channels <= 0 {
				channels = defaultChannels
			}
			return sampleRate, channels
		}
		if size%2 == 1 {
			size++ // chunks are word-aligned
		}
		pos += 8 + size
	}
	return defaultSampleRate, defaultChannels
}
