package task

import (
	"errors"
	"strings"
)

// ErrNoContent is returned when neither manual text nor transcribed audio
// carry any content. It is the only fatal precondition of task creation and
// maps to a client error upstream.
var ErrNoContent = errors.New("no content supplied")

// Normalize merges manual text and audio-derived text into the single input
// string the extraction engine works on. Both sides are trimmed; when both
// are present the transcript is appended after the manual text with a single
// space.
func Normalize(text, audioText string) (string, error) {
	text = strings.TrimSpace(text)
	audioText = strings.TrimSpace(audioText)

	switch {
	case text != "" && audioText != "":
		return text + " " + audioText, nil
	case text != "":
		return text, nil
	case audioText != "":
		return audioText, nil
	}
	return "", ErrNoContent
}
