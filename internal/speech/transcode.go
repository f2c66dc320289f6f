package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Transcoder converts compressed audio into canonical PCM: 16 kHz sample
// rate, mono, 16-bit signed little-endian samples.
type Transcoder interface {
	ToPCM(ctx context.Context, audio []byte) ([]byte, error)
}

// FFmpegTranscoder shells out to the ffmpeg binary reading from stdin and
// writing raw PCM to stdout.
type FFmpegTranscoder struct {
	// Binary overrides the ffmpeg executable path. Empty means "ffmpeg"
	// resolved from PATH.
	Binary string
}

// ToPCM transcodes audio to 16 kHz mono s16le. Any ffmpeg failure is a
// TranscodeError; callers must not fall through to recognition with the
// original bytes.
func (t *FFmpegTranscoder) ToPCM(ctx context.Context, audio []byte) ([]byte, error) {
	binary := t.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(audio)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, &TranscodeError{Err: fmt.Errorf("ffmpeg: %w: %s", err, msg)}
		}
		return nil, &TranscodeError{Err: fmt.Errorf("ffmpeg: %w", err)}
	}
	if stdout.Len() == 0 {
		return nil, &TranscodeError{Err: fmt.Errorf("ffmpeg produced no output")}
	}

	return stdout.Bytes(), nil
}
