package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/services"
	"github.com/medo-health/assistant-api/internal/uploads"
	"github.com/medo-health/assistant-api/internal/utils"
)

// maxChatFiles bounds how many attachments one chat turn may carry.
const maxChatFiles = 5

type ChatHandler struct {
	service services.ChatService
	store   *uploads.Store
	maxSize int64
	logger  *utils.Logger
}

func NewChatHandler(service services.ChatService, store *uploads.Store, maxSize int64, logger *utils.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		store:   store,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Chat handles POST /api/chat: a multipart form with an optional "message"
// field and zero or more "files" parts.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	limit := h.maxSize*maxChatFiles + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respondError(w, h.logger, utils.NewBadRequestError("Request body exceeds the upload size limit"))
			return
		}
		respondError(w, h.logger, utils.NewBadRequestError("Invalid form data"))
		return
	}

	message := r.FormValue("message")

	var fileHeaders []*multipart.FileHeader
	if r.MultipartForm != nil {
		fileHeaders = r.MultipartForm.File["files"]
	}
	if len(fileHeaders) > maxChatFiles {
		respondError(w, h.logger, utils.NewBadRequestError("Too many files. Please upload at most 5 files at once."))
		return
	}

	saved, err := h.saveFiles(fileHeaders)
	if err != nil {
		h.store.ReleaseAll(saved)
		respondError(w, h.logger, err)
		return
	}

	req := models.ChatRequest{Message: message, Files: saved}
	result := h.service.Handle(r.Context(), req)

	if !result.Success {
		status := http.StatusInternalServerError
		if req.IsEmpty() {
			status = http.StatusBadRequest
		}
		respondJSON(w, h.logger, status, errorResponse{Error: result.Error})
		return
	}

	resp := models.ChatResponse{Warning: result.Warning}
	resp.Message.Content = result.Data
	respondJSON(w, h.logger, http.StatusOK, resp)
}

func (h *ChatHandler) saveFiles(headers []*multipart.FileHeader) ([]models.UploadedFile, error) {
	var saved []models.UploadedFile
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return saved, utils.NewBadRequestError("Failed to read uploaded file " + header.Filename)
		}

		mimeType := determineMimeType(header.Filename, header.Header.Get("Content-Type"))
		file, err := h.store.Save(src, header.Filename, mimeType, header.Size)
		src.Close()
		if err != nil {
			return saved, err
		}
		saved = append(saved, file)
	}
	return saved, nil
}

// Health handles GET /api/health.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.service.Health(r.Context())

	resp := models.HealthResponse{Model: status.ModelName}
	httpStatus := http.StatusOK

	switch {
	case !status.BackendReachable:
		resp.Status = "error"
		resp.Backend = "not running"
		resp.Message = "Ollama service is not running. Please make sure Ollama is installed and running on your computer."
		httpStatus = http.StatusServiceUnavailable
	case !status.ModelAvailable:
		resp.Status = "ok"
		resp.Backend = "running"
		resp.Message = "Ollama is running but the " + status.ModelName +
			" model may not be installed. Run \"ollama pull " + status.ModelName + "\" to install it."
	default:
		resp.Status = "ok"
		resp.Backend = "running"
	}

	respondJSON(w, h.logger, httpStatus, resp)
}
