package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	alts []Alternative
	err  error

	gotSampleRate int
	gotLanguage   string
	gotPCM        []byte
}

func (f *fakeRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRateHz int, languageCode string) ([]Alternative, error) {
	f.gotPCM = pcm
	f.gotSampleRate = sampleRateHz
	f.gotLanguage = languageCode
	return f.alts, f.err
}

type fakeTranscoder struct {
	out []byte
	err error
}

func (f *fakeTranscoder) ToPCM(ctx context.Context, audio []byte) ([]byte, error) {
	if f.err != nil {
		return nil, &TranscodeError{Err: f.err}
	}
	return f.out, nil
}

func TestTranscribeWAV(t *testing.T) {
	rec := &fakeRecognizer{alts: []Alternative{
		{Transcript: " comprar leche mañana ", Confidence: 0.92},
		{Transcript: "comprar lecho", Confidence: 0.41},
	}}
	tr := NewTranscriber(rec, &fakeTranscoder{}, "es-MX")

	got, err := tr.Transcribe(context.Background(), wavHeader(44100, 1), "")
	require.NoError(t, err)
	assert.Equal(t, "comprar leche mañana", got)
	assert.Equal(t, 44100, rec.gotSampleRate)
	assert.Equal(t, "es-MX", rec.gotLanguage)
}

func TestTranscribeLanguageHint(t *testing.T) {
	rec := &fakeRecognizer{}
	tr := NewTranscriber(rec, &fakeTranscoder{}, "es-MX")

	_, err := tr.Transcribe(context.Background(), wavHeader(16000, 1), "es-ES")
	require.NoError(t, err)
	assert.Equal(t, "es-ES", rec.gotLanguage)
}

func TestTranscribeEmptyResultIsNotAnError(t *testing.T) {
	rec := &fakeRecognizer{alts: nil}
	tr := NewTranscriber(rec, &fakeTranscoder{}, "")

	got, err := tr.Transcribe(context.Background(), wavHeader(16000, 1), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTranscribeM4AIsTranscoded(t *testing.T) {
	rec := &fakeRecognizer{alts: []Alternative{{Transcript: "hola"}}}
	tc := &fakeTranscoder{out: []byte("pcm samples")}
	tr := NewTranscriber(rec, tc, "")

	got, err := tr.Transcribe(context.Background(), m4aHeader(), "")
	require.NoError(t, err)
	assert.Equal(t, "hola", got)

	// Recognition ran on the transcoded bytes with canonical parameters.
	assert.Equal(t, []byte("pcm samples"), rec.gotPCM)
	assert.Equal(t, 16000, rec.gotSampleRate)
}

func TestTranscribeM4ATranscodeFailureIsFatal(t *testing.T) {
	rec := &fakeRecognizer{alts: []Alternative{{Transcript: "nunca"}}}
	tr := NewTranscriber(rec, &fakeTranscoder{err: errors.New("ffmpeg exploded")}, "")

	_, err := tr.Transcribe(context.Background(), m4aHeader(), "")
	var tcErr *TranscodeError
	require.ErrorAs(t, err, &tcErr)

	// Recognition must not run on untranscoded bytes.
	assert.Nil(t, rec.gotPCM)
}

func TestTranscribeUnknownFormatProceeds(t *testing.T) {
	rec := &fakeRecognizer{alts: []Alternative{{Transcript: "mejor esfuerzo"}}}
	failing := &fakeTranscoder{err: errors.New("should not be called")}
	tr := NewTranscriber(rec, failing, "")

	got, err := tr.Transcribe(context.Background(), []byte("mystery bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, "mejor esfuerzo", got)
	assert.Equal(t, 16000, rec.gotSampleRate)
}

func TestTranscribeRecognizerError(t *testing.T) {
	rec := &fakeRecognizer{err: &TranscriptionError{Status: "UNAUTHENTICATED", Message: "bad key"}}
	tr := NewTranscriber(rec, &fakeTranscoder{}, "")

	_, err := tr.Transcribe(context.Background(), wavHeader(16000, 1), "")
	var trErr *TranscriptionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "UNAUTHENTICATED", trErr.Status)
}

func TestTranscribeUnconfigured(t *testing.T) {
	tr := NewTranscriber(nil, &fakeTranscoder{}, "")

	_, err := tr.Transcribe(context.Background(), wavHeader(16000, 1), "")
	var trErr *TranscriptionError
	require.ErrorAs(t, err, &trErr)
}
