// Package speech turns recorded audio into text for the dialogue.
package speech

import (
	"context"
	"errors"
)

// DefaultMIMEType is what browsers' MediaRecorder produces.
const DefaultMIMEType = "audio/webm"

// Instruction is sent alongside the audio.
const Instruction = "Please transcribe this audio accurately. Only provide the transcription text without any additional commentary."

var ErrEmptyAudio = errors.New("empty audio")

// Transcriber is the speech-to-text capability.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// TranscriberFunc adapts a function to Transcriber.
type TranscriberFunc func(ctx context.Context, audio []byte, mimeType string) (string, error)

func (f TranscriberFunc) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return f(ctx, audio, mimeType)
}
