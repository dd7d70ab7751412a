package services

import "context"

// ---------------------------------------------------------------------------
// TTSService — interface for the text-to-speech backend
// The HTTP handlers depend on this interface rather than the Gemini client
// directly so tests can substitute a stub provider.
// ---------------------------------------------------------------------------

// TTSResponse is the audio payload returned by a TTS provider: the decoded
// bytes plus the mime type label the provider declared for them. The bytes
// may be raw PCM (e.g. "audio/L16;rate=24000") and need container wrapping
// before playback.
type TTSResponse struct {
	AudioData []byte
	MimeType  string
}

// TTSService is the interface a text-to-speech provider must implement.
type TTSService interface {
	// GenerateSpeech converts text to audio with the named prebuilt voice.
	// apiKey overrides the provider's configured key when non-empty.
	// Exactly one of the response and the error is non-nil.
	GenerateSpeech(ctx context.Context, apiKey, text, voiceName string) (*TTSResponse, error)
}
