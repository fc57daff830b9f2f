package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/services"
	"github.com/medo-health/assistant-api/internal/utils"
)

type LibraryHandler struct {
	service services.LibraryService
	logger  *utils.Logger
}

func NewLibraryHandler(service services.LibraryService, logger *utils.Logger) *LibraryHandler {
	return &LibraryHandler{service: service, logger: logger}
}

func (h *LibraryHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListArticles(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, articles)
}

func (h *LibraryHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	article, err := h.service.GetArticle(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, article)
}

func (h *LibraryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	articles, err := h.service.ListArticlesByCategory(r.Context(), category)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, articles)
}

func (h *LibraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.SearchArticles(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, articles)
}

func (h *LibraryHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	article, err := h.service.CreateArticle(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, article)
}

func (h *LibraryHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	article, err := h.service.UpdateArticle(r.Context(), id, input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, article)
}

func (h *LibraryHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Article deleted"})
}

func (h *LibraryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, categories)
}
