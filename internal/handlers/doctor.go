package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/services"
	"github.com/medo-health/assistant-api/internal/uploads"
	"github.com/medo-health/assistant-api/internal/utils"
)

type DoctorHandler struct {
	service services.DoctorService
	store   *uploads.Store
	maxSize int64
	logger  *utils.Logger
}

func NewDoctorHandler(service services.DoctorService, store *uploads.Store, maxSize int64, logger *utils.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		store:   store,
		maxSize: maxSize,
		logger:  logger,
	}
}

// AnalyzeImage handles POST /api/doctor/analyze: multipart form with an
// "image" part and an optional "query" field.
func (h *DoctorHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	file, ok := h.saveFormFile(w, r, "image")
	if !ok {
		return
	}

	analysis, err := h.service.AnalyzeImage(r.Context(), file, r.FormValue("query"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, models.AnalyzeImageResponse{Analysis: analysis})
}

// Transcribe handles POST /api/doctor/transcribe: multipart form with an
// "audio" part.
func (h *DoctorHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	file, ok := h.saveFormFile(w, r, "audio")
	if !ok {
		return
	}

	text, err := h.service.Transcribe(r.Context(), file)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, models.TranscribeResponse{Text: text})
}

// Speak handles POST /api/doctor/speak: JSON body {"text": ...}.
func (h *DoctorHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	key, err := h.service.Speak(r.Context(), req.Text)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, models.SpeakResponse{AudioKey: key})
}

func (h *DoctorHandler) saveFormFile(w http.ResponseWriter, r *http.Request, field string) (models.UploadedFile, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respondError(w, h.logger, utils.NewBadRequestError("Request body exceeds the upload size limit"))
		} else {
			respondError(w, h.logger, utils.NewBadRequestError("Invalid form data"))
		}
		return models.UploadedFile{}, false
	}

	src, header, err := r.FormFile(field)
	if err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("No "+field+" file provided"))
		return models.UploadedFile{}, false
	}
	defer src.Close()

	mimeType := determineMimeType(header.Filename, header.Header.Get("Content-Type"))
	file, err := h.store.Save(src, header.Filename, mimeType, header.Size)
	if err != nil {
		respondError(w, h.logger, err)
		return models.UploadedFile{}, false
	}
	return file, true
}
