package speech

import (
	"context"
	"log"
	"strings"
)

// Transcriber orchestrates container detection, transcoding and the
// recognition call. It is the single entry point the HTTP layer uses for
// audio input.
type Transcriber struct {
	rec         Recognizer
	transcoder  Transcoder
	defaultLang string
}

// NewTranscriber creates a transcriber. A nil recognizer means the speech
// capability is unconfigured and every call fails with TranscriptionError,
// since silently dropping a user's audio would hide a real outage.
func NewTranscriber(rec Recognizer, transcoder Transcoder, defaultLang string) *Transcriber {
	if transcoder == nil {
		transcoder = &FFmpegTranscoder{}
	}
	if defaultLang == "" {
		defaultLang = "es-MX"
	}
	return &Transcriber{rec: rec, transcoder: transcoder, defaultLang: defaultLang}
}

// Transcribe converts raw uploaded audio into text.
//
// WAV input is recognized as-is with the header-derived sample rate. M4A is
// transcoded to canonical PCM first; transcode failure is fatal for the
// request. Unknown containers proceed best-effort with default PCM
// parameters. An empty transcript is a valid, non-fatal outcome.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	if t.rec == nil {
		return "", &TranscriptionError{Message: "speech recognition is not configured (SPEECH_API_KEY)"}
	}

	lang := languageHint
	if lang == "" {
		lang = t.defaultLang
	}

	pcm := audio
	switch format := DetectFormat(audio); format {
	case FormatM4A:
		transcoded, err := t.transcoder.ToPCM(ctx, audio)
		if err != nil {
			return "", err
		}
		log.Printf("[Speech] Transcoded m4a: %d -> %d bytes", len(audio), len(transcoded))
		pcm = transcoded
	case FormatUnknown:
		log.Printf("[Speech] Unknown audio container (%d bytes), proceeding without transcoding", len(audio))
	}

	desc := Describe(pcm)
	alts, err := t.rec.Recognize(ctx, pcm, desc.SampleRateHz, lang)
	if err != nil {
		return "", err
	}
	if len(alts) == 0 {
		return "", nil
	}

	return strings.TrimSpace(alts[0].Transcript), nil
}
