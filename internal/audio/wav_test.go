package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeWAVRoundTrip(t *testing.T) {
	// Two full frames of 16-bit mono samples
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0x7F}

	wav, err := EncodeWAV(pcm, 24000, 1, 16)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	format, data, err := DecodeWAV(wav)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !bytes.Equal(data, pcm) {
		t.Errorf("data not round-tripped: got %v, want %v", data, pcm)
	}
	if format.SampleRate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", format.SampleRate)
	}
	if format.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", format.Channels)
	}
	if format.BitsPerSample != 16 {
		t.Errorf("expected 16 bits per sample, got %d", format.BitsPerSample)
	}
	if format.DataSize != len(pcm) {
		t.Errorf("declared data size %d, want %d", format.DataSize, len(pcm))
	}
}

func TestEncodeWAVHeaderFields(t *testing.T) {
	pcm := make([]byte, 48000) // 1 second of silence at 24kHz mono 16-bit

	wav, err := EncodeWAV(pcm, 24000, 1, 16)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if len(wav) != 48044 {
		t.Fatalf("expected 48044 bytes (44 header + 48000 data), got %d", len(wav))
	}

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE signature")
	}
	if riffSize := binary.LittleEndian.Uint32(wav[4:8]); riffSize != 36+48000 {
		t.Errorf("RIFF chunk size %d, want %d", riffSize, 36+48000)
	}
	if audioFormat := binary.LittleEndian.Uint16(wav[20:22]); audioFormat != 1 {
		t.Errorf("audio format %d, want 1 (PCM)", audioFormat)
	}
	if byteRate := binary.LittleEndian.Uint32(wav[28:32]); byteRate != 48000 {
		t.Errorf("byte rate %d, want 48000", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(wav[32:34]); blockAlign != 2 {
		t.Errorf("block align %d, want 2", blockAlign)
	}
	if dataSize := binary.LittleEndian.Uint32(wav[40:44]); dataSize != 48000 {
		t.Errorf("data chunk size %d, want 48000", dataSize)
	}
}

func TestEncodeWAVEmptyInput(t *testing.T) {
	wav, err := EncodeWAV(nil, 24000, 1, 16)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(wav) != HeaderSize {
		t.Errorf("expected header-only file of %d bytes, got %d", HeaderSize, len(wav))
	}

	format, data, err := DecodeWAV(wav)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if format.DataSize != 0 || len(data) != 0 {
		t.Errorf("expected empty data chunk, got size %d", format.DataSize)
	}
}

func TestEncodeWAVPartialFrame(t *testing.T) {
	// 3 bytes is not a multiple of the 2-byte frame size
	_, err := EncodeWAV([]byte{0x01, 0x02, 0x03}, 24000, 1, 16)
	if !errors.Is(err, ErrPartialFrame) {
		t.Fatalf("expected ErrPartialFrame, got %v", err)
	}
}

func TestIsRawPCM(t *testing.T) {
	cases := []struct {
		mime string
		want bool
	}{
		{"audio/L16;rate=24000", true},
		{"audio/l16", true},
		{"audio/pcm;rate=24000", true},
		{"audio/wav", false},
		{"audio/mpeg", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsRawPCM(c.mime); got != c.want {
			t.Errorf("IsRawPCM(%q) = %v, want %v", c.mime, got, c.want)
		}
	}
}

func TestSampleRateFromMime(t *testing.T) {
	cases := []struct {
		mime string
		want int
	}{
		{"audio/L16;rate=24000", 24000},
		{"audio/L16; rate=16000", 16000},
		{"audio/L16;codec=pcm;rate=44100", 44100},
		{"audio/L16", 24000},
		{"audio/L16;rate=bogus", 24000},
		{"audio/L16;rate=-1", 24000},
	}

	for _, c := range cases {
		if got := SampleRateFromMime(c.mime); got != c.want {
			t.Errorf("SampleRateFromMime(%q) = %d, want %d", c.mime, got, c.want)
		}
	}
}

func TestNormalizeWrapsRawPCM(t *testing.T) {
	pcm := make([]byte, 480)

	out, mime, err := Normalize("audio/L16;rate=24000", pcm)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if mime != "audio/wav" {
		t.Errorf("expected audio/wav, got %q", mime)
	}

	format, data, err := DecodeWAV(out)
	if err != nil {
		t.Fatalf("output is not a valid WAV: %v", err)
	}
	if format.SampleRate != 24000 {
		t.Errorf("sample rate %d, want 24000", format.SampleRate)
	}
	if !bytes.Equal(data, pcm) {
		t.Error("PCM data altered during normalization")
	}
}

func TestNormalizePassthrough(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}

	out, mime, err := Normalize("audio/mpeg", mp3)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if mime != "audio/mpeg" {
		t.Errorf("mime changed to %q", mime)
	}
	if !bytes.Equal(out, mp3) {
		t.Error("containerized payload was modified")
	}
}

func TestNormalizePartialFrame(t *testing.T) {
	_, _, err := Normalize("audio/L16;rate=24000", []byte{0x01})
	if !errors.Is(err, ErrPartialFrame) {
		t.Fatalf("expected ErrPartialFrame, got %v", err)
	}
}
