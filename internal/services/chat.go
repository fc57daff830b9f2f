package services

import (
	"context"
	"fmt"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/prompt"
	"github.com/medo-health/assistant-api/internal/utils"
)

// Backend is the inference backend consumed by the chat pipeline.
type Backend interface {
	CheckHealth(ctx context.Context) models.HealthStatus
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// FileExtractor turns one uploaded file into its prompt representation.
type FileExtractor interface {
	Extract(file models.UploadedFile, withPayload bool) (models.ExtractedContent, error)
}

// UploadReleaser deletes temporary upload artifacts.
type UploadReleaser interface {
	ReleaseAll(files []models.UploadedFile)
}

type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) models.ChatResult
	Health(ctx context.Context) models.HealthStatus
}

type chatService struct {
	backend   Backend
	extractor FileExtractor
	uploads   UploadReleaser
	logger    *utils.Logger
}

func NewChatService(backend Backend, extractor FileExtractor, uploads UploadReleaser, logger *utils.Logger) ChatService {
	return &chatService{
		backend:   backend,
		extractor: extractor,
		uploads:   uploads,
		logger:    logger,
	}
}

// Handle runs one chat request through the full pipeline: validation,
// health gate, file extraction, prompt assembly, and a single inference
// call. Temporary files are released before returning, whichever step the
// request ends on.
func (s *chatService) Handle(ctx context.Context, req models.ChatRequest) models.ChatResult {
	defer s.uploads.ReleaseAll(req.Files)

	if req.IsEmpty() {
		return models.ChatResult{
			Error: "Please provide a message or at least one file.",
		}
	}

	// The gate decides whether an inference call may be attempted at all,
	// so it runs before any extraction work.
	status := s.backend.CheckHealth(ctx)
	if !status.BackendReachable {
		s.logger.Warn("Backend unreachable, rejecting chat request")
		return models.ChatResult{
			Error: "Ollama service is not running. Please make sure Ollama is installed and running on your computer.",
		}
	}

	warning := ""
	if !status.ModelAvailable {
		// The backend may lazily pull the model, so this warns instead of
		// blocking the request.
		warning = fmt.Sprintf("Ollama is running but the %s model may not be installed. "+
			"Run \"ollama pull %s\" to install it.", status.ModelName, status.ModelName)
		s.logger.Warn("Configured model not reported by backend", "model", status.ModelName)
	}

	var extracted []models.ExtractedContent
	for _, file := range req.Files {
		ec, err := s.extractor.Extract(file, false)
		if err != nil {
			// One bad file never sinks the batch.
			s.logger.Error("Failed to process file, skipping",
				"filename", file.OriginalName, "error", err)
			continue
		}
		extracted = append(extracted, ec)
	}

	assembled := prompt.Assemble(req.Message, extracted)

	answer, err := s.backend.Chat(ctx, []models.ChatMessage{
		{Role: "system", Content: assembled.SystemPreamble},
		{Role: "user", Content: assembled.UserContent},
	})
	if err != nil {
		s.logger.Error("Inference call failed", "error", err)
		return models.ChatResult{
			Error: "Unable to process your request. Please try again later.",
		}
	}

	return models.ChatResult{
		Success: true,
		Data:    answer,
		Warning: warning,
	}
}

// Health reports the current backend status for GET /api/health. Like the
// chat path, it probes fresh on every call.
func (s *chatService) Health(ctx context.Context) models.HealthStatus {
	return s.backend.CheckHealth(ctx)
}
