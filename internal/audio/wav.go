package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// WAV container encoder
// Gemini's TTS endpoint returns raw linear PCM (mime "audio/L16;rate=24000").
// Browsers can't play bare PCM, so we wrap it in a standard 44-byte RIFF/WAVE
// header. Already-containerized formats pass through untouched.
// ---------------------------------------------------------------------------

const (
	// HeaderSize is the size of a canonical PCM WAV header in bytes.
	HeaderSize = 44

	// formatPCM is the WAVE format code for uncompressed linear PCM.
	formatPCM = 1

	// Gemini TTS output defaults: 24 kHz, mono, 16-bit.
	DefaultSampleRate    = 24000
	DefaultChannels      = 1
	DefaultBitsPerSample = 16
)

// ErrPartialFrame is returned when the PCM byte length is not a multiple of
// the frame size (channels × bytes-per-sample). Encoding such data would
// declare a data chunk that no decoder can split into whole samples, so we
// refuse rather than truncate.
var ErrPartialFrame = errors.New("pcm length is not a multiple of the frame size")

// EncodeWAV wraps raw signed 16-bit little-endian PCM samples in a WAV
// container. The input bytes are copied verbatim into the data chunk.
func EncodeWAV(pcm []byte, sampleRate, channels, bitsPerSample int) ([]byte, error) {
	frameSize := channels * bitsPerSample / 8
	if frameSize <= 0 {
		return nil, fmt.Errorf("invalid format: %d channels, %d bits per sample", channels, bitsPerSample)
	}
	if len(pcm)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes, frame size %d", ErrPartialFrame, len(pcm), frameSize)
	}

	dataSize := len(pcm)
	byteRate := sampleRate * frameSize

	wav := make([]byte, HeaderSize+dataSize)

	// RIFF chunk
	copy(wav[0:4], "RIFF")
	binary.LittleEndian.PutUint32(wav[4:8], uint32(36+dataSize))
	copy(wav[8:12], "WAVE")

	// fmt subchunk
	copy(wav[12:16], "fmt ")
	binary.LittleEndian.PutUint32(wav[16:20], 16) // subchunk size for PCM
	binary.LittleEndian.PutUint16(wav[20:22], formatPCM)
	binary.LittleEndian.PutUint16(wav[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(wav[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(wav[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(wav[32:34], uint16(frameSize)) // block align
	binary.LittleEndian.PutUint16(wav[34:36], uint16(bitsPerSample))

	// data subchunk
	copy(wav[36:40], "data")
	binary.LittleEndian.PutUint32(wav[40:44], uint32(dataSize))
	copy(wav[HeaderSize:], pcm)

	return wav, nil
}

// Format describes the fields a WAV header declares.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataSize      int
}

// DecodeWAV parses a canonical PCM WAV file and returns its declared format
// and the raw PCM data. It accepts only the 44-byte header layout EncodeWAV
// produces.
func DecodeWAV(wav []byte) (Format, []byte, error) {
	if len(wav) < HeaderSize {
		return Format{}, nil, fmt.Errorf("wav too short: %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Format{}, nil, errors.New("missing RIFF/WAVE signature")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		return Format{}, nil, errors.New("unexpected chunk layout")
	}
	if binary.LittleEndian.Uint16(wav[20:22]) != formatPCM {
		return Format{}, nil, errors.New("not linear PCM")
	}

	f := Format{
		Channels:      int(binary.LittleEndian.Uint16(wav[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(wav[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(wav[34:36])),
		DataSize:      int(binary.LittleEndian.Uint32(wav[40:44])),
	}
	if HeaderSize+f.DataSize > len(wav) {
		return Format{}, nil, fmt.Errorf("declared data size %d exceeds file", f.DataSize)
	}
	return f, wav[HeaderSize : HeaderSize+f.DataSize], nil
}

// IsRawPCM reports whether a mime type label denotes uncontained linear PCM
// that needs WAV wrapping before playback.
func IsRawPCM(mimeType string) bool {
	m := strings.ToLower(mimeType)
	return strings.Contains(m, "audio/l16") || strings.Contains(m, "audio/pcm")
}

// SampleRateFromMime extracts the rate parameter from a mime type like
// "audio/L16;rate=24000". Falls back to DefaultSampleRate when the parameter
// is absent or malformed.
func SampleRateFromMime(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		param = strings.TrimSpace(param)
		if v, ok := strings.CutPrefix(param, "rate="); ok {
			if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
				return rate
			}
		}
	}
	return DefaultSampleRate
}

// Normalize converts an upstream audio payload into something a player can
// handle: raw PCM gets wrapped into a WAV container (mime becomes audio/wav),
// everything else is returned unchanged with its original mime type.
func Normalize(mimeType string, data []byte) ([]byte, string, error) {
	if !IsRawPCM(mimeType) {
		return data, mimeType, nil
	}

	wav, err := EncodeWAV(data, SampleRateFromMime(mimeType), DefaultChannels, DefaultBitsPerSample)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode WAV: %w", err)
	}
	return wav, "audio/wav", nil
}
