package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/rvasek/gemspeak/internal/audio"
	"github.com/rvasek/gemspeak/internal/models"
	"github.com/rvasek/gemspeak/internal/services"
)

// DownloadFilename is the name browsers use when saving generated audio.
const DownloadFilename = "gemini_tts_output.wav"

type Handler struct {
	tts services.TTSService

	// hasDefaultKey reports whether the server carries a fallback Gemini key,
	// so requests without an apiKey field can be rejected up front.
	hasDefaultKey bool
}

func NewHandler(tts services.TTSService, hasDefaultKey bool) *Handler {
	return &Handler{
		tts:           tts,
		hasDefaultKey: hasDefaultKey,
	}
}

// Synthesize handles POST /v1/synthesize.
// On success the response body is the playable audio itself: raw PCM from the
// model is wrapped into a WAV container, anything already containerized is
// streamed through with its upstream mime type.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req models.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.APIKey == "" && !h.hasDefaultKey {
		respondError(w, http.StatusBadRequest, "Gemini API key is required")
		return
	}

	synthesisID := uuid.New()
	log.Printf("[API] Synthesis %s started (voice=%s, textLen=%d)", synthesisID, req.Voice, len(req.Text))

	resp, err := h.tts.GenerateSpeech(r.Context(), req.APIKey, req.Text, req.Voice)
	if err != nil {
		log.Printf("[API] Synthesis %s failed: %v", synthesisID, err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	playable, mimeType, err := audio.Normalize(resp.MimeType, resp.AudioData)
	if err != nil {
		log.Printf("[API] Synthesis %s produced unplayable audio: %v", synthesisID, err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	log.Printf("[API] Synthesis %s done (%d bytes, %s)", synthesisID, len(playable), mimeType)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(playable)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", DownloadFilename))
	w.Header().Set("X-Synthesis-ID", synthesisID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(playable)
}

// ListVoices handles GET /v1/voices.
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.VoicesResponse{
		Voices:       models.Voices,
		DefaultVoice: models.DefaultVoice,
	})
}

// Health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
