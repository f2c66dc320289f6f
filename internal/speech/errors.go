package speech

import "fmt"

// TranscodeError means the audio container was recognized but could not be
// converted to the canonical PCM encoding. It is fatal for the request:
// transcription is never attempted on untranscoded bytes.
type TranscodeError struct {
	Err error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("audio transcode failed: %v", e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// TranscriptionError means the speech capability itself was unreachable or
// erroring. It carries the upstream status and message and is distinct from
// an empty-but-successful transcript.
type TranscriptionError struct {
	Status  string
	Message string
}

func (e *TranscriptionError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("transcription failed (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}
