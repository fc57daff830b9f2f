package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/utils"
)

type fakeVision struct {
	analysis   string
	transcript string
	err        error
	lastMime   string
	lastQuery  string
}

func (v *fakeVision) AnalyzeImage(_ context.Context, _ []byte, mimeType, query string) (string, error) {
	v.lastMime = mimeType
	v.lastQuery = query
	return v.analysis, v.err
}

func (v *fakeVision) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return v.transcript, v.err
}

type fakeSpeech struct {
	audio []byte
	err   error
}

func (s *fakeSpeech) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return s.audio, s.err
}

type fakeAudioStore struct {
	objects map[string][]byte
	putErr  error
}

func (s *fakeAudioStore) Put(_ context.Context, key string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return nil
}

func (s *fakeAudioStore) Get(_ context.Context, key string) ([]byte, error) {
	return s.objects[key], nil
}

func (s *fakeAudioStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func tempUpload(t *testing.T, name, mime string, data []byte) models.UploadedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write temp upload: %v", err)
	}
	return models.UploadedFile{OriginalName: name, MimeType: mime, TemporaryPath: path}
}

func TestAnalyzeImage(t *testing.T) {
	vision := &fakeVision{analysis: "No fracture visible."}
	rel := &fakeReleaser{}
	svc := NewDoctorService(vision, &fakeSpeech{}, &fakeAudioStore{}, rel, utils.NewLogger("error"))

	image := tempUpload(t, "xray.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	analysis, err := svc.AnalyzeImage(context.Background(), image, "any fractures?")

	if err != nil {
		t.Fatalf("AnalyzeImage returned error: %v", err)
	}
	if analysis != "No fracture visible." {
		t.Errorf("unexpected analysis: %q", analysis)
	}
	if vision.lastMime != "image/png" {
		t.Errorf("mime type not forwarded: %q", vision.lastMime)
	}
	if len(rel.released) != 1 {
		t.Errorf("uploaded image must be released")
	}
}

func TestAnalyzeImageRejectsNonImage(t *testing.T) {
	svc := NewDoctorService(&fakeVision{}, &fakeSpeech{}, &fakeAudioStore{}, &fakeReleaser{}, utils.NewLogger("error"))

	file := tempUpload(t, "note.txt", "text/plain", []byte("text"))
	if _, err := svc.AnalyzeImage(context.Background(), file, "q"); err == nil {
		t.Errorf("expected rejection of non-image file")
	}
}

func TestAnalyzeImageDefaultQuery(t *testing.T) {
	vision := &fakeVision{analysis: "ok"}
	svc := NewDoctorService(vision, &fakeSpeech{}, &fakeAudioStore{}, &fakeReleaser{}, utils.NewLogger("error"))

	image := tempUpload(t, "scan.jpg", "image/jpeg", []byte{0xFF, 0xD8})
	if _, err := svc.AnalyzeImage(context.Background(), image, "   "); err != nil {
		t.Fatalf("AnalyzeImage returned error: %v", err)
	}
	if vision.lastQuery == "" || strings.TrimSpace(vision.lastQuery) == "" {
		t.Errorf("blank query should be replaced with a default")
	}
}

func TestSpeakStoresAudio(t *testing.T) {
	store := &fakeAudioStore{}
	svc := NewDoctorService(&fakeVision{}, &fakeSpeech{audio: []byte("mp3bytes")}, store, &fakeReleaser{}, utils.NewLogger("error"))

	key, err := svc.Speak(context.Background(), "Stay hydrated.")
	if err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}
	if !strings.HasPrefix(key, "responses/") || !strings.HasSuffix(key, ".mp3") {
		t.Errorf("unexpected audio key: %q", key)
	}
	if string(store.objects[key]) != "mp3bytes" {
		t.Errorf("audio bytes not stored under the returned key")
	}
}

func TestSpeakUpstreamFailure(t *testing.T) {
	store := &fakeAudioStore{}
	svc := NewDoctorService(&fakeVision{}, &fakeSpeech{err: errors.New("tts down")}, store, &fakeReleaser{}, utils.NewLogger("error"))

	if _, err := svc.Speak(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error when synthesis fails")
	}
	if len(store.objects) != 0 {
		t.Errorf("nothing may be stored when synthesis fails")
	}
}

func TestSpeakRejectsEmptyText(t *testing.T) {
	svc := NewDoctorService(&fakeVision{}, &fakeSpeech{}, &fakeAudioStore{}, &fakeReleaser{}, utils.NewLogger("error"))

	if _, err := svc.Speak(context.Background(), "  "); err == nil {
		t.Errorf("expected rejection of empty text")
	}
}

func TestTranscribe(t *testing.T) {
	rel := &fakeReleaser{}
	svc := NewDoctorService(&fakeVision{transcript: "patient has a cough"}, &fakeSpeech{}, &fakeAudioStore{}, rel, utils.NewLogger("error"))

	audio := tempUpload(t, "voice.webm", "audio/webm", []byte("audio"))
	text, err := svc.Transcribe(context.Background(), audio)

	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if text != "patient has a cough" {
		t.Errorf("unexpected transcript: %q", text)
	}
	if len(rel.released) != 1 {
		t.Errorf("uploaded audio must be released")
	}
}
