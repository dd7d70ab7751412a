package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ---------------------------------------------------------------------------
// Gemini Text-to-Speech Service
// Calls the generateContent endpoint of the Gemini TTS preview model with
// responseModalities=["AUDIO"] and a prebuilt voice. The audio comes back
// base64-encoded inside candidates[0].content.parts[*].inlineData, usually
// as raw L16 PCM at 24 kHz.
// ---------------------------------------------------------------------------

const (
	geminiDefaultBaseURL  = "https://generativelanguage.googleapis.com"
	geminiDefaultTTSModel = "gemini-2.5-flash-preview-tts"
)

// ErrNoAudioData is returned when the API responds 200 but the expected
// inlineData audio part is missing. The message is surfaced verbatim to the UI.
var ErrNoAudioData = errors.New("No audio data in response")

// GeminiService handles text-to-speech via the Gemini generateContent API.
type GeminiService struct {
	apiKey  string // server-configured default key; may be empty
	model   string
	baseURL string
	client  *http.Client
}

// Ensure GeminiService implements TTSService at compile time.
var _ TTSService = (*GeminiService)(nil)

// NewGeminiService creates a Gemini TTS service. apiKey is the server-level
// default key and may be empty when every request supplies its own.
func NewGeminiService(apiKey string) *GeminiService {
	return NewGeminiServiceWithOptions(apiKey, geminiDefaultTTSModel, geminiDefaultBaseURL, 120*time.Second)
}

// NewGeminiServiceWithOptions creates a Gemini TTS service with a custom model,
// base URL and request timeout. Empty strings fall back to defaults.
func NewGeminiServiceWithOptions(apiKey, model, baseURL string, timeout time.Duration) *GeminiService {
	if model == "" {
		model = geminiDefaultTTSModel
	}
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ---------------------------------------------------------------------------
// Request / response types (generateContent wire format)
// ---------------------------------------------------------------------------

type GeminiGenerateContentRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text,omitempty"`
}

type GeminiGenerationConfig struct {
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *GeminiSpeechConfig `json:"speechConfig,omitempty"`
}

type GeminiSpeechConfig struct {
	VoiceConfig GeminiVoiceConfig `json:"voiceConfig"`
}

type GeminiVoiceConfig struct {
	PrebuiltVoiceConfig GeminiPrebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type GeminiPrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type GeminiGenerateContentResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

type GeminiCandidate struct {
	Content GeminiResponseContent `json:"content"`
}

type GeminiResponseContent struct {
	Parts []GeminiResponsePart `json:"parts"`
}

type GeminiResponsePart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerateSpeech converts text to speech using the Gemini TTS model.
// Implements the TTSService interface. apiKey overrides the service-level
// default when non-empty. One blocking call, no retry.
func (s *GeminiService) GenerateSpeech(ctx context.Context, apiKey, text, voiceName string) (*TTSResponse, error) {
	effectiveKey := s.apiKey
	if apiKey != "" {
		effectiveKey = apiKey
	}
	if effectiveKey == "" {
		return nil, fmt.Errorf("no Gemini API key configured")
	}

	reqBody := GeminiGenerateContentRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: text}}},
		},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &GeminiSpeechConfig{
				VoiceConfig: GeminiVoiceConfig{
					PrebuiltVoiceConfig: GeminiPrebuiltVoiceConfig{VoiceName: voiceName},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, effectiveKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	log.Printf("[Gemini] Generating speech (model=%s, voice=%s, textLen=%d)", s.model, voiceName, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var geminiResp GeminiGenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, ErrNoAudioData
	}

	// The model may interleave a text part before the audio — take the first
	// part that carries inlineData.
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		if part.InlineData == nil || part.InlineData.Data == "" {
			continue
		}

		audioData, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audio payload: %w", err)
		}

		log.Printf("[Gemini] Speech generated (%d bytes, %s)", len(audioData), part.InlineData.MimeType)

		return &TTSResponse{
			AudioData: audioData,
			MimeType:  part.InlineData.MimeType,
		}, nil
	}

	return nil, ErrNoAudioData
}
