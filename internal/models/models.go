package models

import (
	"fmt"
	"strings"
)

// MaxTextLength is the hard cap on input text, matching the model's practical
// single-request limit. Longer audio gets truncated by the API anyway.
const MaxTextLength = 5000

// Advisory thresholds for the UI character counter. Above ~2000 characters the
// model tends to truncate the generated audio.
const (
	TextWarnLength = 1500
	TextRiskLength = 2000
)

// Voices is the fixed set of prebuilt Gemini TTS voices exposed in the UI.
var Voices = []string{
	"Puck", "Charon", "Kore", "Fenrir", "Aoede",
	"Leda", "Grus", "Elio", "Kiera", "Orion",
}

// DefaultVoice is used when a request omits the voice field.
const DefaultVoice = "Puck"

// IsValidVoice reports whether name is one of the supported prebuilt voices.
func IsValidVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}

// SynthesizeRequest is the body of POST /v1/synthesize.
type SynthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`

	// APIKey is the caller-supplied Gemini key. Optional when the server is
	// configured with a default key.
	APIKey string `json:"apiKey,omitempty"`
}

// Validate checks the request against input constraints and fills defaults.
// It does not check API-key availability; that depends on server config.
func (r *SynthesizeRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(r.Text) > MaxTextLength {
		return fmt.Errorf("text exceeds %d characters (got %d)", MaxTextLength, len(r.Text))
	}
	if r.Voice == "" {
		r.Voice = DefaultVoice
	}
	if !IsValidVoice(r.Voice) {
		return fmt.Errorf("unknown voice %q. Allowed: %s", r.Voice, strings.Join(Voices, ", "))
	}
	return nil
}

// VoicesResponse is the body of GET /v1/voices.
type VoicesResponse struct {
	Voices       []string `json:"voices"`
	DefaultVoice string   `json:"default_voice"`
}
