package services

import (
	"context"
	"os"
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/storage"
	"github.com/medo-health/assistant-api/internal/utils"
)

// VisionClient covers the hosted vision and transcription API.
type VisionClient interface {
	AnalyzeImage(ctx context.Context, imageData []byte, mimeType, query string) (string, error)
	Transcribe(ctx context.Context, audioData []byte, filename string) (string, error)
}

// SpeechClient synthesizes speech from text.
type SpeechClient interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type DoctorService interface {
	AnalyzeImage(ctx context.Context, image models.UploadedFile, query string) (string, error)
	Transcribe(ctx context.Context, audio models.UploadedFile) (string, error)
	Speak(ctx context.Context, text string) (string, error)
}

type doctorService struct {
	vision  VisionClient
	speech  SpeechClient
	audio   storage.AudioStore
	uploads UploadReleaser
	logger  *utils.Logger
}

func NewDoctorService(vision VisionClient, speech SpeechClient, audio storage.AudioStore, uploads UploadReleaser, logger *utils.Logger) DoctorService {
	return &doctorService{
		vision:  vision,
		speech:  speech,
		audio:   audio,
		uploads: uploads,
		logger:  logger,
	}
}

// AnalyzeImage sends an uploaded medical image plus the user's query to the
// vision model. This is the one path that ships raw image bytes downstream.
func (s *doctorService) AnalyzeImage(ctx context.Context, image models.UploadedFile, query string) (string, error) {
	defer s.uploads.ReleaseAll([]models.UploadedFile{image})

	if !strings.HasPrefix(image.MimeType, "image/") {
		return "", utils.NewBadRequestError("The uploaded file is not an image")
	}
	if strings.TrimSpace(query) == "" {
		query = "What do you see in this medical image? Explain any findings in plain language."
	}

	data, err := os.ReadFile(image.TemporaryPath)
	if err != nil {
		s.logger.Error("Failed to read uploaded image", "filename", image.OriginalName, "error", err)
		return "", utils.NewInternalError("Failed to read the uploaded image")
	}

	analysis, err := s.vision.AnalyzeImage(ctx, data, image.MimeType, query)
	if err != nil {
		s.logger.Error("Vision analysis failed", "error", err)
		return "", utils.NewBadGatewayError("The image analysis service is unavailable. Please try again later.")
	}
	return analysis, nil
}

// Transcribe converts uploaded audio into text.
func (s *doctorService) Transcribe(ctx context.Context, audio models.UploadedFile) (string, error) {
	defer s.uploads.ReleaseAll([]models.UploadedFile{audio})

	data, err := os.ReadFile(audio.TemporaryPath)
	if err != nil {
		s.logger.Error("Failed to read uploaded audio", "filename", audio.OriginalName, "error", err)
		return "", utils.NewInternalError("Failed to read the uploaded audio")
	}

	text, err := s.vision.Transcribe(ctx, data, audio.OriginalName)
	if err != nil {
		s.logger.Error("Transcription failed", "error", err)
		return "", utils.NewBadGatewayError("The transcription service is unavailable. Please try again later.")
	}
	return text, nil
}

// Speak synthesizes speech for a reply and stores the MP3 in the audio
// store, returning the object key.
func (s *doctorService) Speak(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", utils.NewBadRequestError("Text is required")
	}

	mp3, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		s.logger.Error("Speech synthesis failed", "error", err)
		return "", utils.NewBadGatewayError("The voice service is unavailable. Please try again later.")
	}

	key := "responses/" + utils.GenerateID() + ".mp3"
	if err := s.audio.Put(ctx, key, mp3); err != nil {
		s.logger.Error("Failed to store generated audio", "key", key, "error", err)
		return "", utils.NewInternalError("Failed to store the generated audio")
	}

	s.logger.Info("Stored voice response", "key", key, "bytes", len(mp3))
	return key, nil
}
